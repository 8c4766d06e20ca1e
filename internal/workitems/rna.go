// internal/workitems/rna.go
package workitems

import (
	"context"
	"fmt"
	"strings"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/genai"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/common/validation"
	"accelerator-workers/internal/models"
)

// GenerateRNAs creates an RNA for every assigned readiness level whose
// dimension has none yet. Records for any other dimension are dropped.
func (s *Service) GenerateRNAs(ctx context.Context, startupID int64) ([]models.StartupRNA, error) {
	gc, err := s.loadContext(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if len(gc.levels) == 0 {
		return nil, commonerrors.NewPreconditionFailedError("No readiness levels found for this startup.",
			fmt.Sprintf("startupId: %d", startupID))
	}

	existing, err := s.readiness.ListRNAs(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}
	covered := make(map[models.ReadinessType]bool, len(existing))
	for _, rna := range existing {
		covered[rna.ReadinessLevel.ReadinessType] = true
	}

	missing := make(map[models.ReadinessType]models.ReadinessLevel)
	var missingTypes []models.ReadinessType
	for _, l := range gc.levels {
		rt := l.ReadinessLevel.ReadinessType
		if covered[rt] {
			continue
		}
		if _, dup := missing[rt]; dup {
			continue
		}
		missing[rt] = l.ReadinessLevel
		missingTypes = append(missingTypes, rt)
	}
	if len(missingTypes) == 0 {
		return []models.StartupRNA{}, nil
	}

	prompt, err := RNAPrompt(gc.base, missingTypes)
	if err != nil {
		return nil, fmt.Errorf("render rna prompt: %w", err)
	}
	records, err := genai.GenerateRecords[RNARecord](ctx, s.generator, s.logger, validation.SchemaRNARecords, prompt)
	if err != nil {
		return nil, err
	}

	var rnas []models.StartupRNA
	for _, rec := range records {
		rt, ok := matchType(rec.ReadinessLevelType, missingTypes)
		if !ok {
			s.logger.Warn("ignoring rna for unexpected readiness type", map[string]interface{}{
				"startupId":     startupID,
				"readinessType": rec.ReadinessLevelType,
			})
			continue
		}
		level, pending := missing[rt]
		if !pending {
			continue
		}
		delete(missing, rt)
		rnas = append(rnas, models.StartupRNA{
			StartupID:      startupID,
			ReadinessLevel: level,
			RNA:            rec.RNA,
			IsAIGenerated:  true,
		})
	}
	if len(rnas) == 0 {
		return []models.StartupRNA{}, nil
	}

	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		for i := range rnas {
			id, err := s.readiness.InsertRNA(ctx, q, &rnas[i])
			if err != nil {
				return err
			}
			rnas[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkItemsGenerated.WithLabelValues("rna").Add(float64(len(rnas)))
	s.logger.Info("rnas generated", map[string]interface{}{
		"startupId": startupID,
		"count":     len(rnas),
	})
	return rnas, nil
}

func matchType(raw string, candidates []models.ReadinessType) (models.ReadinessType, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range candidates {
		if strings.EqualFold(raw, string(c)) {
			return c, true
		}
	}
	return "", false
}
