// cmd/worker-manager/wiring.go
package main

import (
	"context"
	"fmt"
	"time"

	"accelerator-workers/internal/approval"
	"accelerator-workers/internal/assessment"
	"accelerator-workers/internal/common/aws"
	"accelerator-workers/internal/common/camunda"
	"accelerator-workers/internal/common/config"
	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/common/genai"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/internal/events"
	"accelerator-workers/internal/readiness"
	"accelerator-workers/internal/startup"
	"accelerator-workers/internal/store"
	"accelerator-workers/internal/workitems"

	statustransition "accelerator-workers/internal/workers/approval/status-transition"
	assignall "accelerator-workers/internal/workers/assessment/assign-all"
	createtemplate "accelerator-workers/internal/workers/assessment/create-template"
	reconcile "accelerator-workers/internal/workers/assessment/reconcile"
	aggregatescores "accelerator-workers/internal/workers/readiness/aggregate-scores"
	assignlevels "accelerator-workers/internal/workers/readiness/assign-levels"
	calculatorreport "accelerator-workers/internal/workers/readiness/calculator-report"
	rankpending "accelerator-workers/internal/workers/readiness/rank-pending"
	ratedimension "accelerator-workers/internal/workers/readiness/rate-dimension"
	generationgates "accelerator-workers/internal/workers/startup/generation-gates"
	qualification "accelerator-workers/internal/workers/startup/qualification"
	generatebatch "accelerator-workers/internal/workers/workitems/generate-batch"
	generaternas "accelerator-workers/internal/workers/workitems/generate-rnas"
	refineitem "accelerator-workers/internal/workers/workitems/refine-item"
)

type services struct {
	readiness  *readiness.Service
	approval   *approval.Service
	workItems  *workitems.Service
	assessment *assessment.Service
	startup    *startup.Service
}

// buildServices wires repositories, the event bus and the external clients
// into the domain services.
func buildServices(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, rdb *database.RedisClient, log logger.Logger) (*services, error) {
	db := pg.DB
	tx := pg.Transactor()

	startups := store.NewStartupRepository()
	answers := store.NewAnswerRepository()
	levels := store.NewReadinessRepository()
	items := store.NewWorkItemRepository()
	assessments := store.NewAssessmentRepository()

	var sinks []events.Sink
	if cfg.Events.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Events.SNS.Region)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		sinks = append(sinks, events.NewSNSSink(snsClient, cfg.Events.SNS.TopicARN))
	}
	bus := events.NewBus(log.WithFields(map[string]interface{}{"component": "events"}), sinks...)

	var mailer startup.Mailer
	if cfg.Notifications.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.SES.Region, cfg.Notifications.SES.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		mailer = sesClient
	}

	generator := genai.NewAnthropicGenerator(genai.AnthropicConfig{
		APIKey:    cfg.GenAI.APIKey,
		Model:     cfg.GenAI.Model,
		MaxTokens: cfg.GenAI.MaxTokens,
		Timeout:   config.GetDuration(cfg.GenAI.Timeout),
	})

	catalog := readiness.NewCatalogCache(rdb.Client, db, levels,
		time.Duration(cfg.Readiness.CatalogCacheTTL)*time.Second, log)
	locker := workitems.NewRedisLocker(rdb.Client, config.GetDuration(cfg.Generation.LockTTL), log)

	assessmentSvc := assessment.NewService(db, tx, assessments, startups, bus, log)
	bus.Subscribe(events.TypeTemplateCreated, assessmentSvc.HandleTemplateCreated)

	return &services{
		readiness: readiness.NewService(db, tx, startups, answers, levels, catalog, log),
		approval:  approval.NewService(tx, items, log),
		workItems: workitems.NewService(db, tx, startups, levels, items, store.NewChatRepository(), generator, locker,
			workitems.Config{MaxConcurrency: cfg.GenAI.MaxConcurrency}, log),
		assessment: assessmentSvc,
		startup: startup.NewService(db, tx, startups, levels, assessmentSvc, mailer, bus,
			startup.Config{ProgramName: cfg.App.ProgramName}, log),
	}, nil
}

type registration struct {
	taskType string
	handle   camunda.JobHandlerFunc
}

// registrations builds one handler per job type. Worker timeouts come from
// the workers section of the config.
func registrations(cfg *config.Config, svc *services, obs *observability.Observability, log logger.Logger) []registration {
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	aggCfg := aggregatescores.LoadConfig()
	aggCfg.Timeout = timeout(aggregatescores.TaskType)
	calcCfg := calculatorreport.LoadConfig()
	calcCfg.Timeout = timeout(calculatorreport.TaskType)
	levelsCfg := assignlevels.LoadConfig()
	levelsCfg.Timeout = timeout(assignlevels.TaskType)
	rateCfg := ratedimension.LoadConfig()
	rateCfg.Timeout = timeout(ratedimension.TaskType)
	rankCfg := rankpending.LoadConfig()
	rankCfg.Timeout = timeout(rankpending.TaskType)

	rnaCfg := generaternas.LoadConfig()
	rnaCfg.Timeout = timeout(generaternas.TaskType)
	batchCfg := generatebatch.LoadConfig()
	batchCfg.Timeout = timeout(generatebatch.TaskType)
	batchCfg.DefaultCount = cfg.Generation.DefaultCount
	refineCfg := refineitem.LoadConfig()
	refineCfg.Timeout = timeout(refineitem.TaskType)

	transitionCfg := statustransition.LoadConfig()
	transitionCfg.Timeout = timeout(statustransition.TaskType)

	reconcileCfg := reconcile.LoadConfig()
	reconcileCfg.Timeout = timeout(reconcile.TaskType)
	templateCfg := createtemplate.LoadConfig()
	templateCfg.Timeout = timeout(createtemplate.TaskType)
	assignAllCfg := assignall.LoadConfig()
	assignAllCfg.Timeout = timeout(assignall.TaskType)

	qualificationCfg := qualification.LoadConfig()
	qualificationCfg.Timeout = timeout(qualification.TaskType)
	gatesCfg := generationgates.LoadConfig()
	gatesCfg.Timeout = timeout(generationgates.TaskType)

	return []registration{
		// Readiness
		{aggregatescores.TaskType, aggregatescores.NewHandler(aggCfg, svc.readiness, obs, log).Handle},
		{calculatorreport.TaskType, calculatorreport.NewHandler(calcCfg, svc.readiness, obs, log).Handle},
		{assignlevels.TaskType, assignlevels.NewHandler(levelsCfg, svc.readiness, obs, log).Handle},
		{ratedimension.TaskType, ratedimension.NewHandler(rateCfg, svc.readiness, obs, log).Handle},
		{rankpending.TaskType, rankpending.NewHandler(rankCfg, svc.readiness, obs, log).Handle},

		// Work items
		{generaternas.TaskType, generaternas.NewHandler(rnaCfg, svc.workItems, obs, log).Handle},
		{generatebatch.TaskType, generatebatch.NewHandler(batchCfg, svc.workItems, obs, log).Handle},
		{refineitem.TaskType, refineitem.NewHandler(refineCfg, svc.workItems, obs, log).Handle},
		{statustransition.TaskType, statustransition.NewHandler(transitionCfg, svc.approval, obs, log).Handle},

		// Assessments
		{reconcile.TaskType, reconcile.NewHandler(reconcileCfg, svc.assessment, obs, log).Handle},
		{createtemplate.TaskType, createtemplate.NewHandler(templateCfg, svc.assessment, obs, log).Handle},
		{assignall.TaskType, assignall.NewHandler(assignAllCfg, svc.assessment, obs, log).Handle},

		// Startup lifecycle
		{qualification.TaskType, qualification.NewHandler(qualificationCfg, svc.startup, obs, log).Handle},
		{generationgates.TaskType, generationgates.NewHandler(gatesCfg, svc.startup, obs, log).Handle},
	}
}
