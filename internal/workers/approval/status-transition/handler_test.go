// internal/workers/approval/status-transition/handler_test.go
package statustransition

import (
	"context"
	"testing"

	"accelerator-workers/internal/approval"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// machineOnly applies the real state machine to an in-memory task.
type machineOnly struct {
	task *models.Task
}

func (m machineOnly) ApplyStatusTransition(_ context.Context, _ models.WorkItemKind, _ int64, role models.Role, newStatus models.Status) (models.Approvable, approval.Outcome, error) {
	return m.task, approval.Apply(m.task, role, newStatus), nil
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name         string
		role         models.Role
		newStatus    models.Status
		wantOutcome  approval.Outcome
		wantStatus   models.Status
		wantApproval models.ApprovalStatus
	}{
		{
			name:         "startup proposes",
			role:         models.RoleStartup,
			newStatus:    models.StatusCompleted,
			wantOutcome:  approval.OutcomeProposed,
			wantStatus:   models.StatusNew,
			wantApproval: models.ApprovalPending,
		},
		{
			name:         "mentor applies",
			role:         models.RoleMentor,
			newStatus:    models.StatusOnTrack,
			wantOutcome:  approval.OutcomeApplied,
			wantStatus:   models.StatusOnTrack,
			wantApproval: models.ApprovalUnchanged,
		},
		{
			name:         "no change",
			role:         models.RoleStartup,
			newStatus:    models.StatusNew,
			wantOutcome:  approval.OutcomeNoop,
			wantStatus:   models.StatusNew,
			wantApproval: models.ApprovalUnchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &models.Task{ID: 4, ApprovalState: models.NewApprovalState()}
			h := NewHandler(LoadConfig(), machineOnly{task: task}, nil, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), &Input{
				Kind: models.KindTask, ItemID: 4, ActorRole: tt.role, NewStatus: tt.newStatus,
			})
			require.NoError(t, err)

			assert.Equal(t, string(tt.wantOutcome), out.Outcome)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.newStatus, out.RequestedStatus)
			assert.Equal(t, tt.wantApproval, out.ApprovalStatus)
			assert.Same(t, task, out.Item)
		})
	}
}

func TestHandler_Execute_RequiresItem(t *testing.T) {
	h := NewHandler(LoadConfig(), machineOnly{}, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{Kind: models.KindTask})
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidationFailed))
}
