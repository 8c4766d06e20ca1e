// internal/workers/startup/generation-gates/handler.go
package generationgates

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
	TaskType = "check-generation-gates"
)

type GateChecker interface {
	GenerationGates(ctx context.Context, startupID int64) (*startup.Gates, error)
}

type Handler struct {
	config  *Config
	service GateChecker
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service GateChecker, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute exposes the gates as flat variables for BPMN gateway conditions.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StartupID <= 0 {
		return nil, commonerrors.NewValidationFailedError("startupId is required", "")
	}

	gates, err := h.service.GenerationGates(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}
	return &Output{
		StartupID:        input.StartupID,
		AllowRNAs:        gates.AllowRNAs,
		AllowTasks:       gates.AllowTasks,
		AllowInitiatives: gates.AllowInitiatives,
		AllowRoadblocks:  gates.AllowRoadblocks,
	}, nil
}
