// internal/workers/readiness/calculator-report/handler_test.go
package calculatorreport

import (
	"context"
	"testing"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/readiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFromAnswers struct {
	answers []models.QuestionAnswer
}

func (r reportFromAnswers) CalculatorReport(context.Context, int64) (*readiness.CalculatorReport, error) {
	report := readiness.BuildCalculatorReport(r.answers)
	return &report, nil
}

func TestHandler_Execute_MapsReport(t *testing.T) {
	service := reportFromAnswers{answers: []models.QuestionAnswer{
		{Category: "Technology", Score: 5},
		{Category: "product development", Score: 3},
	}}
	h := NewHandler(LoadConfig(), service, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{StartupID: 3})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Scores.Technology)
	assert.Equal(t, 3, out.Scores.ProductDevelopment)
	assert.Equal(t, 7, out.TechnologyLevel)
	assert.Equal(t, 1, out.CommercializationLevel)
}

func TestHandler_Execute_RequiresStartup(t *testing.T) {
	h := NewHandler(LoadConfig(), reportFromAnswers{}, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{})
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidationFailed))
}
