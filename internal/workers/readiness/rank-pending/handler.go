// internal/workers/readiness/rank-pending/handler.go
package rankpending

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-pending-startups"
)

type Ranker interface {
	RankPendingStartups(ctx context.Context) ([]readiness.RankedStartup, error)
}

type Handler struct {
	config  *Config
	service Ranker
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Ranker, obs *observability.Observability, log logger.Logger) *Handler {
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
	ranking, err := h.service.RankPendingStartups(ctx)
	if err != nil {
		return nil, err
	}
	total := len(ranking)

	limit := h.config.Limit
	if input.Limit > 0 {
		limit = input.Limit
	}
	if limit > 0 && limit < len(ranking) {
		ranking = ranking[:limit]
	}

	h.logger.Info("pending startups ranked", map[string]interface{}{
		"total":    total,
		"returned": len(ranking),
	})
	return &Output{Ranking: ranking, Total: total}, nil
}
