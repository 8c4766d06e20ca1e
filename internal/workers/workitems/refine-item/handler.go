// internal/workers/workitems/refine-item/handler.go
package refineitem

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/workitems"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "refine-work-item"
)

type Refiner interface {
	Refine(ctx context.Context, req workitems.RefineRequest) (*workitems.RefineResult, error)
}

type Handler struct {
	config  *Config
	service Refiner
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Refiner, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute returns the proposed field values and the whole conversation. The
// item is not changed; applying a proposal is left to the caller.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.service.Refine(ctx, workitems.RefineRequest{
		Kind:   input.Kind,
		ItemID: input.ItemID,
		Prompt: input.Prompt,
	})
	if err != nil {
		return nil, err
	}
	return &Output{
		Kind:        res.Kind,
		ItemID:      res.ItemID,
		StartupID:   res.StartupID,
		Refinements: res.Refinements,
		Commentary:  res.Commentary,
		History:     res.History,
	}, nil
}
