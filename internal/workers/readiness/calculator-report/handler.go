// internal/workers/readiness/calculator-report/handler.go
package calculatorreport

import (
	"context"

	"accelerator-workers/internal/common/camunda"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-commercialization-levels"
)

type ReportBuilder interface {
	CalculatorReport(ctx context.Context, startupID int64) (*readiness.CalculatorReport, error)
}

type Handler struct {
	config  *Config
	service ReportBuilder
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service ReportBuilder, obs *observability.Observability, log logger.Logger) *Handler {
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

	report, err := h.service.CalculatorReport(ctx, input.StartupID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("calculator report built", map[string]interface{}{
		"startupId":              input.StartupID,
		"technologyLevel":        report.TechnologyLevel,
		"commercializationLevel": report.CommercializationLevel,
	})
	return &Output{
		StartupID:              input.StartupID,
		Scores:                 report.Scores,
		TechnologyLevel:        report.TechnologyLevel,
		CommercializationLevel: report.CommercializationLevel,
	}, nil
}
