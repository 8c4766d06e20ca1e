// internal/workers/workitems/generate-rnas/handler_test.go
package generaternas

import (
	"context"
	"testing"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRNAGenerator struct {
	rnas []models.StartupRNA
	err  error
}

func (f fakeRNAGenerator) GenerateRNAs(context.Context, int64) ([]models.StartupRNA, error) {
	return f.rnas, f.err
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name      string
		service   fakeRNAGenerator
		wantCount int
		wantCode  commonerrors.ErrorCode
	}{
		{
			name: "generated",
			service: fakeRNAGenerator{rnas: []models.StartupRNA{
				{ID: 1, RNA: "Needs certification plan", IsAIGenerated: true},
				{ID: 2, RNA: "No investor deck", IsAIGenerated: true},
			}},
			wantCount: 2,
		},
		{
			name:      "nothing missing",
			service:   fakeRNAGenerator{rnas: []models.StartupRNA{}},
			wantCount: 0,
		},
		{
			name:     "no readiness levels",
			service:  fakeRNAGenerator{err: commonerrors.NewPreconditionFailedError("No readiness levels found for this startup.", "")},
			wantCode: commonerrors.ErrCodePreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), tt.service, nil, logger.NewTestLogger(t))
			out, err := h.Execute(context.Background(), &Input{StartupID: 8})
			if tt.wantCode != "" {
				assert.True(t, commonerrors.HasCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, out.Count)
			assert.Len(t, out.RNAs, tt.wantCount)
		})
	}
}
