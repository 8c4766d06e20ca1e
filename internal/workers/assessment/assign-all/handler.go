// internal/workers/assessment/assign-all/handler.go
package assignall

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "assign-all-assessments"
)

type Assigner interface {
	AssignAllTemplates(ctx context.Context, startupID int64) ([]int64, error)
}

type Handler struct {
	config  *Config
	service Assigner
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Assigner, obs *observability.Observability, log logger.Logger) *Handler {
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

	ids, err := h.service.AssignAllTemplates(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return &Output{StartupID: input.StartupID, AssessmentIDs: ids, Assigned: len(ids)}, nil
}
