// internal/workers/startup/qualification/handler.go
package qualification

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/startup"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-qualification-status"
)

type QualificationUpdater interface {
	UpdateQualification(ctx context.Context, startupID int64, action string, managerID int64, message string) (*startup.QualificationResult, error)
}

type Handler struct {
	config  *Config
	service QualificationUpdater
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service QualificationUpdater, obs *observability.Observability, log logger.Logger) *Handler {
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StartupID <= 0 {
		return nil, commonerrors.NewValidationFailedError("startupId is required", "")
	}

	result, err := h.service.UpdateQualification(ctx, input.StartupID, input.Action, input.ManagerID, input.Message)
	if err != nil {
		return nil, err
	}

	out := &Output{
		StartupID:           result.StartupID,
		QualificationStatus: result.Status,
		Message:             result.Message,
		AssignedTemplates:   result.AssignedTemplates,
	}
	if result.WaitlistMessage != nil {
		out.WaitlistMessageID = result.WaitlistMessage.ID
	}
	if result.Notification != nil {
		out.NotificationStatus = result.Notification.Status
	}
	return out, nil
}
