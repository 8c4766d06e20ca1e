// internal/workers/readiness/aggregate-scores/handler.go
package aggregatescores

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
	TaskType = "aggregate-readiness-scores"
)

type ScoreAggregator interface {
	AggregateScores(ctx context.Context, startupID int64) (map[string]int, error)
}

type Handler struct {
	config  *Config
	service ScoreAggregator
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service ScoreAggregator, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute sums the startup's URAT answers per readiness dimension.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StartupID <= 0 {
		return nil, commonerrors.NewValidationFailedError("startupId is required", "")
	}

	scores, err := h.service.AggregateScores(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("readiness scores aggregated", map[string]interface{}{
		"startupId": input.StartupID,
		"scores":    scores,
	})
	return &Output{StartupID: input.StartupID, Scores: scores}, nil
}
