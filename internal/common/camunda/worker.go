// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"accelerator-workers/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandlerFunc is the signature every worker's Handle method satisfies.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// StartWorker opens a job worker for taskType. Disabled workers return nil.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandlerFunc, log *zap.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	jw := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return jw
}

// CompleteJob completes job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("encode job variables: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := cmd.Send(sendCtx); err != nil {
		return fmt.Errorf("complete job %d: %w", job.Key, err)
	}
	return nil
}
