// internal/workers/readiness/rate-dimension/handler.go
package ratedimension

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
	TaskType = "rate-readiness-dimension"
)

type DimensionRater interface {
	RateDimension(ctx context.Context, startupID int64, readinessType models.ReadinessType, level int) (*models.StartupReadinessLevel, error)
}

type Handler struct {
	config  *Config
	service DimensionRater
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service DimensionRater, obs *observability.Observability, log logger.Logger) *Handler {
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

	rated, err := h.service.RateDimension(ctx, input.StartupID, input.ReadinessType, input.Level)
	if err != nil {
		return nil, err
	}

	h.logger.Info("readiness dimension rated", map[string]interface{}{
		"startupId":     input.StartupID,
		"readinessType": string(input.ReadinessType),
		"level":         rated.ReadinessLevel.Level,
	})
	return &Output{ReadinessLevel: *rated}, nil
}
