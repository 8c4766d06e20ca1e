// internal/workers/assessment/create-template/handler.go
package createtemplate

import (
	"context"

	"accelerator-workers/internal/assessment"
	"accelerator-workers/internal/common/camunda"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "create-assessment-template"
)

type TemplateCreator interface {
	CreateTemplate(ctx context.Context, name string, assessmentType models.AssessmentType, answerType models.AnswerType) (*assessment.CreateTemplateResult, error)
}

type Handler struct {
	config  *Config
	service TemplateCreator
	logger  logger.Logger
	runtime camunda.JobRuntime
}

func NewHandler(config *Config, service TemplateCreator, obs *observability.Observability, log logger.Logger) *Handler {
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

// Execute creates the template. Qualified startups receive it through the
// template-created subscription, not here; when that fan-out fails the job
// fails with a retryable error and the retry re-announces the same template.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result, err := h.service.CreateTemplate(ctx, input.Name, input.AssessmentType, input.AnswerType)
	if err != nil {
		return nil, err
	}
	return &Output{Template: result.Template, EventID: result.EventID, Existing: result.Existing}, nil
}
