// internal/workers/readiness/assign-levels/handler.go
package assignlevels

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
	TaskType = "assign-readiness-levels"
)

type LevelAssigner interface {
	NormalizeAndAssign(ctx context.Context, startupID int64) ([]models.StartupReadinessLevel, error)
}

type Handler struct {
	config  *Config
	service LevelAssigner
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service LevelAssigner, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute normalizes the startup's rubric scores into one catalog level per
// dimension and stores them.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StartupID <= 0 {
		return nil, commonerrors.NewValidationFailedError("startupId is required", "")
	}

	assigned, err := h.service.NormalizeAndAssign(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]int, len(assigned))
	for _, a := range assigned {
		levels[a.ReadinessLevel.ReadinessType.Abbreviation()] = a.ReadinessLevel.Level
	}
	return &Output{
		StartupID:       input.StartupID,
		ReadinessLevels: assigned,
		Levels:          levels,
	}, nil
}
