// internal/workers/assessment/reconcile/handler.go
package reconcile

import (
	"context"

	"accelerator-workers/internal/assessment"
	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "reconcile-assessments"
)

type Reconciler interface {
	ReconcileAssignments(ctx context.Context, startupID int64, templateIDs []int64) (*assessment.ReconcileResult, error)
}

type Handler struct {
	config  *Config
	service Reconciler
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service Reconciler, obs *observability.Observability, log logger.Logger) *Handler {
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
	if len(input.AssessmentIDs) == 0 {
		return nil, commonerrors.NewValidationFailedError("assessmentIds must not be empty", "")
	}

	result, err := h.service.ReconcileAssignments(ctx, input.StartupID, input.AssessmentIDs)
	if err != nil {
		return nil, err
	}

	h.logger.Info("assessments reconciled", map[string]interface{}{
		"startupId": input.StartupID,
		"assigned":  result.Assigned,
		"replaced":  result.Replaced,
		"skipped":   len(result.Skipped),
	})

	return &Output{
		StartupID: input.StartupID,
		Assigned:  result.Assigned,
		Replaced:  result.Replaced,
		Skipped:   result.Skipped,
		Results:   result.Results,
	}, nil
}
