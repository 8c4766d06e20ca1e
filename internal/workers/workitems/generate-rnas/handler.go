// internal/workers/workitems/generate-rnas/handler.go
package generaternas

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-rnas"
)

type RNAGenerator interface {
	GenerateRNAs(ctx context.Context, startupID int64) ([]models.StartupRNA, error)
}

type Handler struct {
	config  *Config
	service RNAGenerator
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service RNAGenerator, obs *observability.Observability, log logger.Logger) *Handler {
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

	rnas, err := h.service.GenerateRNAs(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}
	return &Output{StartupID: input.StartupID, RNAs: rnas, Count: len(rnas)}, nil
}
