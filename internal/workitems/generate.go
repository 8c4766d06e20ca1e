// internal/workitems/generate.go
package workitems

import (
	"context"
	"errors"
	"fmt"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/genai"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/common/validation"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"

	"golang.org/x/sync/errgroup"
)

type BatchRequest struct {
	StartupID      int64
	Kind           models.WorkItemKind
	RequestedCount int
	RNAIDs         []int64
	TaskIDs        []int64
}

// BatchResult holds the persisted items of the requested kind in ordering-key order.
type BatchResult struct {
	Kind        models.WorkItemKind `json:"kind"`
	Tasks       []models.Task       `json:"tasks,omitempty"`
	Initiatives []models.Initiative `json:"initiatives,omitempty"`
	Roadblocks  []models.Roadblock  `json:"roadblocks,omitempty"`
	Shifted     int64               `json:"shifted"`
}

func (r *BatchResult) Count() int {
	return len(r.Tasks) + len(r.Initiatives) + len(r.Roadblocks)
}

// GenerateBatch asks the generator for new items and inserts them at the
// front of the startup's ordering. Every generator call finishes before the
// first write; any generator failure leaves the store untouched.
func (s *Service) GenerateBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if !req.Kind.Valid() {
		return nil, commonerrors.NewValidationFailedError("Invalid work item kind", string(req.Kind))
	}
	if req.RequestedCount < 1 {
		return nil, commonerrors.NewValidationFailedError("Requested count must be at least 1",
			fmt.Sprintf("requestedCount: %d", req.RequestedCount))
	}

	gc, err := s.loadContext(ctx, req.StartupID)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case models.KindTask:
		return s.generateTasks(ctx, gc, req)
	case models.KindInitiative:
		return s.generateInitiatives(ctx, gc, req)
	default:
		return s.generateRoadblocks(ctx, gc, req)
	}
}

func (s *Service) generateTasks(ctx context.Context, gc *generationContext, req BatchRequest) (*BatchResult, error) {
	if len(req.RNAIDs) == 0 {
		return nil, commonerrors.NewValidationFailedError("rnaIds is required for task generation", "")
	}
	rnas, err := s.readiness.ListRNAsByIDs(ctx, s.db, gc.startup.ID, req.RNAIDs)
	if err != nil {
		return nil, err
	}
	if len(rnas) == 0 {
		return nil, commonerrors.NewPreconditionFailedError("No RNAs found for this startup.",
			fmt.Sprintf("startupId: %d, rnaIds: %v", gc.startup.ID, req.RNAIDs))
	}

	prompts := make([]string, len(rnas))
	for i, rna := range rnas {
		if prompts[i], err = TaskPrompt(gc.base, rna, req.RequestedCount); err != nil {
			return nil, fmt.Errorf("render task prompt: %w", err)
		}
	}

	batches, err := fanOut[TaskRecord](ctx, s, validation.SchemaTaskRecords, prompts)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for i, records := range batches {
		rna := rnas[i]
		for _, rec := range records {
			target := resolveTargetLevel(rec, rna.ReadinessLevel.Level)
			entry, err := s.readiness.FindCatalogEntry(ctx, s.db, rna.ReadinessLevel.ReadinessType, target)
			if errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("target level not in catalog, skipping task", map[string]interface{}{
					"startupId":     gc.startup.ID,
					"readinessType": string(rna.ReadinessLevel.ReadinessType),
					"targetLevel":   target,
				})
				continue
			}
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, models.Task{
				ApprovalState: models.NewApprovalState(),
				StartupID:     gc.startup.ID,
				Description:   rec.Description,
				ReadinessType: rna.ReadinessLevel.ReadinessType,
				TargetLevelID: entry.ID,
				TargetLevel:   entry.Level,
				AssigneeID:    gc.startup.UserID,
			})
		}
	}

	result := &BatchResult{Kind: models.KindTask, Tasks: []models.Task{}}
	if len(tasks) == 0 {
		return result, nil
	}

	err = s.withLock(ctx, gc.startup.ID, models.KindTask, func(q database.DBTX) error {
		shifted, err := s.items.ShiftTaskPriorities(ctx, q, gc.startup.ID, len(tasks))
		if err != nil {
			return err
		}
		result.Shifted = shifted
		for i := range tasks {
			tasks[i].PriorityNumber = i + 1
			id, err := s.items.InsertTask(ctx, q, &tasks[i])
			if err != nil {
				return err
			}
			tasks[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Tasks = tasks
	s.recordGenerated(gc.startup.ID, models.KindTask, len(tasks), result.Shifted)
	return result, nil
}

func (s *Service) generateInitiatives(ctx context.Context, gc *generationContext, req BatchRequest) (*BatchResult, error) {
	if len(req.TaskIDs) == 0 {
		return nil, commonerrors.NewValidationFailedError("taskIds is required for initiative generation", "")
	}
	tasks, err := s.items.ListTasksByIDs(ctx, s.db, gc.startup.ID, req.TaskIDs)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, commonerrors.NewPreconditionFailedError("No tasks found for this startup.",
			fmt.Sprintf("startupId: %d, taskIds: %v", gc.startup.ID, req.TaskIDs))
	}

	prompts := make([]string, len(tasks))
	for i, task := range tasks {
		if prompts[i], err = InitiativePrompt(gc.base, task, req.RequestedCount); err != nil {
			return nil, fmt.Errorf("render initiative prompt: %w", err)
		}
	}

	batches, err := fanOut[InitiativeRecord](ctx, s, validation.SchemaInitiativeRecords, prompts)
	if err != nil {
		return nil, err
	}

	var initiatives []models.Initiative
	for i, records := range batches {
		for _, rec := range records {
			initiatives = append(initiatives, models.Initiative{
				ApprovalState: models.NewApprovalState(),
				StartupID:     gc.startup.ID,
				TaskID:        tasks[i].ID,
				Description:   rec.Description,
				Measures:      rec.Measures,
				Targets:       rec.Targets,
				Remarks:       rec.Remarks,
				AssigneeID:    gc.startup.UserID,
			})
		}
	}

	result := &BatchResult{Kind: models.KindInitiative, Initiatives: []models.Initiative{}}
	if len(initiatives) == 0 {
		return result, nil
	}

	err = s.withLock(ctx, gc.startup.ID, models.KindInitiative, func(q database.DBTX) error {
		shifted, err := s.items.ShiftInitiativeNumbers(ctx, q, gc.startup.ID, len(initiatives))
		if err != nil {
			return err
		}
		result.Shifted = shifted
		for i := range initiatives {
			initiatives[i].InitiativeNumber = i + 1
			id, err := s.items.InsertInitiative(ctx, q, &initiatives[i])
			if err != nil {
				return err
			}
			initiatives[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Initiatives = initiatives
	s.recordGenerated(gc.startup.ID, models.KindInitiative, len(initiatives), result.Shifted)
	return result, nil
}

// generateRoadblocks appends roadblocks; riskNumber is a severity, so nothing is renumbered.
func (s *Service) generateRoadblocks(ctx context.Context, gc *generationContext, req BatchRequest) (*BatchResult, error) {
	tasks, err := s.items.ListOpenTasks(ctx, s.db, gc.startup.ID)
	if err != nil {
		return nil, err
	}
	initiatives, err := s.items.ListOpenInitiatives(ctx, s.db, gc.startup.ID)
	if err != nil {
		return nil, err
	}

	prompt, err := RoadblockPrompt(gc.base, tasks, initiatives, req.RequestedCount)
	if err != nil {
		return nil, fmt.Errorf("render roadblock prompt: %w", err)
	}

	records, err := genai.GenerateRecords[RoadblockRecord](ctx, s.generator, s.logger, validation.SchemaRoadblockRecords, prompt)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Kind: models.KindRoadblock, Roadblocks: []models.Roadblock{}}
	if len(records) == 0 {
		return result, nil
	}

	roadblocks := make([]models.Roadblock, len(records))
	for i, rec := range records {
		roadblocks[i] = models.Roadblock{
			ApprovalState: models.NewApprovalState(),
			StartupID:     gc.startup.ID,
			RiskNumber:    clampRisk(rec.RiskNumber),
			Description:   rec.Description,
			Fix:           rec.Fix,
			AssigneeID:    gc.startup.UserID,
		}
	}

	err = s.withLock(ctx, gc.startup.ID, models.KindRoadblock, func(q database.DBTX) error {
		for i := range roadblocks {
			id, err := s.items.InsertRoadblock(ctx, q, &roadblocks[i])
			if err != nil {
				return err
			}
			roadblocks[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Roadblocks = roadblocks
	s.recordGenerated(gc.startup.ID, models.KindRoadblock, len(roadblocks), 0)
	return result, nil
}

// fanOut runs one generator call per prompt with bounded parallelism and
// returns the decoded records in prompt order.
func fanOut[T any](ctx context.Context, s *Service, schemaName string, prompts []string) ([][]T, error) {
	results := make([][]T, len(prompts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrency)
	for i, prompt := range prompts {
		i, prompt := i, prompt
		g.Go(func() error {
			records, err := genai.GenerateRecords[T](gctx, s.generator, s.logger, schemaName, prompt)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// withLock runs fn in one transaction while holding the (startup, kind) lock.
func (s *Service) withLock(ctx context.Context, startupID int64, kind models.WorkItemKind, fn func(q database.DBTX) error) error {
	release, err := s.locker.Acquire(ctx, startupID, kind)
	if err != nil {
		return err
	}
	defer release()

	if err := s.tx.WithTx(ctx, fn); err != nil {
		if _, ok := commonerrors.As(err); ok {
			return err
		}
		return commonerrors.NewTransactionFailedError("insert generated "+string(kind), err)
	}
	return nil
}

func (s *Service) recordGenerated(startupID int64, kind models.WorkItemKind, count int, shifted int64) {
	metrics.WorkItemsGenerated.WithLabelValues(string(kind)).Add(float64(count))
	s.logger.Info("work items generated", map[string]interface{}{
		"startupId": startupID,
		"kind":      string(kind),
		"count":     count,
		"shifted":   shifted,
	})
}
