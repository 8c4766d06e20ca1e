// internal/workers/approval/status-transition/handler.go
package statustransition

import (
	"context"

	"accelerator-workers/internal/approval"
	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "apply-status-transition"
)

type Transitioner interface {
	ApplyStatusTransition(ctx context.Context, kind models.WorkItemKind, itemID int64, role models.Role, newStatus models.Status) (models.Approvable, approval.Outcome, error)
}

type Handler struct {
	config  *Config
	service Transitioner
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Transitioner, obs *observability.Observability, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  config,
		service: service,
		logger:  l,
		runtime: camunda.NewJobRuntime(TaskType, config.Timeout, l, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Process(client, job, h.runtime, h.Execute)
}

// Execute applies a status change request. A startup actor only proposes;
// mentors, managers and admins set the status directly. Other roles are
// rejected by the service.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ItemID <= 0 {
		return nil, commonerrors.NewValidationFailedError("itemId is required", "")
	}

	item, outcome, err := h.service.ApplyStatusTransition(ctx, input.Kind, input.ItemID, input.ActorRole, input.NewStatus)
	if err != nil {
		return nil, err
	}

	state := item.State()
	return &Output{
		Kind:            input.Kind,
		ItemID:          input.ItemID,
		Outcome:         string(outcome),
		Item:            item,
		Status:          state.Status,
		RequestedStatus: state.RequestedStatus,
		ApprovalStatus:  state.ApprovalStatus,
	}, nil
}
