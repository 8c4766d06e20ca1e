// internal/workers/startup/generation-gates/handler_test.go
package generationgates

import (
	"context"
	"testing"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/startup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGates struct {
	gates *startup.Gates
	err   error
}

func (f fakeGates) GenerationGates(context.Context, int64) (*startup.Gates, error) {
	return f.gates, f.err
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), fakeGates{gates: &startup.Gates{
		AllowRNAs: true, AllowTasks: true,
	}}, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{StartupID: 6})
	require.NoError(t, err)
	assert.Equal(t, &Output{StartupID: 6, AllowRNAs: true, AllowTasks: true}, out)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := NewHandler(LoadConfig(), fakeGates{}, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{})
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidationFailed))

	h = NewHandler(LoadConfig(), fakeGates{err: commonerrors.NewResourceNotFoundError("Startup", "startupId: 6")}, nil, logger.NewTestLogger(t))
	_, err = h.Execute(context.Background(), &Input{StartupID: 6})
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeResourceNotFound))
}
