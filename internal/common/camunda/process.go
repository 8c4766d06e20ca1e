// internal/common/camunda/process.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/codes"
)

// JobRuntime is what every handler needs to run a job end to end.
type JobRuntime struct {
	TaskType string
	Timeout  time.Duration
	Logger   logger.Logger
	Errors   *commonerrors.ErrorHandler
	Obs      *observability.Observability
}

// NewJobRuntime builds a runtime whose error handler logs through log.
func NewJobRuntime(taskType string, timeout time.Duration, log logger.Logger, obs *observability.Observability) JobRuntime {
	return JobRuntime{
		TaskType: taskType,
		Timeout:  timeout,
		Logger:   log,
		Errors:   commonerrors.NewErrorHandler(log),
		Obs:      obs,
	}
}

// Process decodes the job variables into In, runs exec and completes the job
// with its output. Failures go through the runtime's ErrorHandler.
func Process[In any, Out any](client worker.JobClient, job entities.Job, rt JobRuntime, exec func(context.Context, *In) (*Out, error)) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(rt.TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(rt.TaskType).Dec()

	timeout := rt.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ctx, span := rt.Obs.StartJobSpan(ctx, rt.TaskType, job.Key)
	defer span.End()

	rt.Logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	fail := func(err error) {
		stdErr := commonerrors.Normalize(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		metrics.WorkerJobsFailed.WithLabelValues(rt.TaskType, string(stdErr.Code)).Inc()
		rt.Obs.RecordJob(ctx, rt.TaskType, time.Since(start), "failed")
		rt.Errors.HandleJobError(ctx, client, job, stdErr)
	}

	var input In
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		fail(commonerrors.NewValidationFailedError("Invalid job variables", err.Error()))
		return
	}

	output, err := exec(ctx, &input)
	if err != nil {
		fail(err)
		return
	}

	if err := CompleteJob(ctx, client, job, output); err != nil {
		rt.Logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		metrics.WorkerJobsFailed.WithLabelValues(rt.TaskType, "COMPLETE_FAILED").Inc()
		return
	}

	duration := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(rt.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(rt.TaskType).Observe(duration.Seconds())
	rt.Obs.RecordJob(ctx, rt.TaskType, duration, "completed")

	rt.Logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": duration.Milliseconds(),
	})
}
