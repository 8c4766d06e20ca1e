// internal/workers/workitems/generate-batch/handler.go
package generatebatch

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/workitems"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-work-items"
)

type BatchGenerator interface {
	GenerateBatch(ctx context.Context, req workitems.BatchRequest) (*workitems.BatchResult, error)
}

type Handler struct {
	config  *Config
	service BatchGenerator
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service BatchGenerator, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute generates a batch of tasks, initiatives or roadblocks and places
// them at the front of the startup's ordering.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StartupID <= 0 {
		return nil, commonerrors.NewValidationFailedError("startupId is required", "")
	}
	count := input.RequestedCount
	if count == 0 {
		count = h.config.DefaultCount
	}

	result, err := h.service.GenerateBatch(ctx, workitems.BatchRequest{
		StartupID:      input.StartupID,
		Kind:           input.Kind,
		RequestedCount: count,
		RNAIDs:         input.Context.RNAIDs,
		TaskIDs:        input.Context.TaskIDs,
	})
	if err != nil {
		return nil, err
	}

	return &Output{
		Kind:        result.Kind,
		Count:       result.Count(),
		Shifted:     result.Shifted,
		Tasks:       result.Tasks,
		Initiatives: result.Initiatives,
		Roadblocks:  result.Roadblocks,
	}, nil
}
