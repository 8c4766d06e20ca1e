// internal/workitems/refine.go
package workitems

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/genai"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/common/validation"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

const defaultCommentary = "Changes applied successfully."

type RefineRequest struct {
	Kind   models.WorkItemKind
	ItemID int64
	Prompt string
}

type RefineResult struct {
	Kind        models.WorkItemKind  `json:"kind"`
	ItemID      int64                `json:"itemId"`
	StartupID   int64                `json:"startupId"`
	Refinements map[string]string    `json:"refinements"`
	Commentary  string               `json:"commentary"`
	History     []models.ChatMessage `json:"history"`
}

// refinementRecord covers every refinable field. The per-kind schema limits
// which of them a reply may carry.
type refinementRecord struct {
	RefinedDescription *string `json:"refinedDescription"`
	RefinedMeasures    *string `json:"refinedMeasures"`
	RefinedTargets     *string `json:"refinedTargets"`
	RefinedRemarks     *string `json:"refinedRemarks"`
	RefinedFix         *string `json:"refinedFix"`
	RefinedRNA         *string `json:"refinedRna"`
}

func (r refinementRecord) fields() map[string]string {
	out := make(map[string]string)
	set := func(name string, v *string) {
		if v == nil {
			return
		}
		if trimmed := strings.TrimSpace(*v); trimmed != "" {
			out[name] = trimmed
		}
	}
	set("refinedDescription", r.RefinedDescription)
	set("refinedMeasures", r.RefinedMeasures)
	set("refinedTargets", r.RefinedTargets)
	set("refinedRemarks", r.RefinedRemarks)
	set("refinedFix", r.RefinedFix)
	set("refinedRna", r.RefinedRNA)
	return out
}

// refineTarget is the item under refinement, flattened for the prompt.
type refineTarget struct {
	startupID int64
	noun      string
	details   []ItemField
	fields    []string
	schema    string
}

// Refine asks the generator to rework one item following the user's prompt
// and the earlier turns of the same conversation. The reply is a proposal:
// both turns are persisted, the item itself is left untouched.
func (s *Service) Refine(ctx context.Context, req RefineRequest) (*RefineResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	switch {
	case !req.Kind.Refinable():
		return nil, commonerrors.NewValidationFailedError("Invalid item kind", string(req.Kind))
	case req.ItemID <= 0:
		return nil, commonerrors.NewValidationFailedError("Item id is required", fmt.Sprintf("itemId: %d", req.ItemID))
	case prompt == "":
		return nil, commonerrors.NewValidationFailedError("Prompt is required", "")
	}

	target, err := s.loadRefineTarget(ctx, req.Kind, req.ItemID)
	if err != nil {
		return nil, err
	}
	gc, err := s.loadContext(ctx, target.startupID)
	if err != nil {
		return nil, err
	}
	history, err := s.chats.ListChatMessages(ctx, s.db, req.Kind, req.ItemID)
	if err != nil {
		return nil, err
	}

	text, err := RefinePrompt(gc.base, target.noun, target.details, history, target.fields, prompt)
	if err != nil {
		return nil, fmt.Errorf("render refine prompt: %w", err)
	}
	reply, err := s.generator.Generate(ctx, text)
	if err != nil {
		return nil, commonerrors.NewGenerationFailedError("generator call failed", err)
	}

	body, commentary := genai.SplitCommentary(reply)
	record, err := genai.DecodeObject[refinementRecord](body, target.schema)
	if err != nil {
		s.logger.Error("invalid AI response", map[string]interface{}{
			"schema":   target.schema,
			"error":    err.Error(),
			"response": reply,
		})
		return nil, commonerrors.NewGenerationFailedError(err.Error(), err)
	}
	refinements := record.fields()
	if len(refinements) == 0 {
		s.logger.Warn("refinement reply carried no fields", map[string]interface{}{
			"kind":   req.Kind,
			"itemId": req.ItemID,
		})
	}
	if commentary == "" {
		commentary = defaultCommentary
	}

	now := time.Now().UTC()
	turns := []models.ChatMessage{
		{ItemKind: req.Kind, ItemID: req.ItemID, Role: models.ChatRoleUser, Content: prompt, CreatedAt: now},
		{ItemKind: req.Kind, ItemID: req.ItemID, Role: models.ChatRoleAI, Content: commentary,
			Refinements: refinements, CreatedAt: now},
	}
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		for i := range turns {
			id, err := s.chats.InsertChatMessage(ctx, q, &turns[i])
			if err != nil {
				return err
			}
			turns[i].ID = id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkItemRefinements.WithLabelValues(string(req.Kind)).Inc()
	s.logger.Info("work item refined", map[string]interface{}{
		"kind":      req.Kind,
		"itemId":    req.ItemID,
		"startupId": target.startupID,
		"fields":    len(refinements),
		"turns":     len(history) + len(turns),
	})

	return &RefineResult{
		Kind:        req.Kind,
		ItemID:      req.ItemID,
		StartupID:   target.startupID,
		Refinements: refinements,
		Commentary:  commentary,
		History:     append(history, turns...),
	}, nil
}

func (s *Service) loadRefineTarget(ctx context.Context, kind models.WorkItemKind, id int64) (*refineTarget, error) {
	if kind == models.KindRNA {
		rna, err := s.readiness.GetRNA(ctx, s.db, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, commonerrors.NewResourceNotFoundError("RNA", fmt.Sprintf("rnaId: %d", id))
		}
		if err != nil {
			return nil, err
		}
		return &refineTarget{
			startupID: rna.StartupID,
			noun:      "RNA",
			details: []ItemField{
				{"Readiness Type", string(rna.ReadinessLevel.ReadinessType)},
				{"Readiness Level", strconv.Itoa(rna.ReadinessLevel.Level)},
				{"RNA", rna.RNA},
			},
			fields: []string{"refinedRna"},
			schema: validation.SchemaRNARefinement,
		}, nil
	}

	item, err := s.items.GetWorkItem(ctx, s.db, kind, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewResourceNotFoundError(string(kind), fmt.Sprintf("id: %d", id))
	}
	if err != nil {
		return nil, err
	}

	switch it := item.(type) {
	case *models.Task:
		return &refineTarget{
			startupID: it.StartupID,
			noun:      "task",
			details: []ItemField{
				{"Readiness Type", string(it.ReadinessType)},
				{"Target Level", strconv.Itoa(it.TargetLevel)},
				{"Description", it.Description},
			},
			fields: []string{"refinedDescription"},
			schema: validation.SchemaTaskRefinement,
		}, nil
	case *models.Initiative:
		return &refineTarget{
			startupID: it.StartupID,
			noun:      "initiative",
			details: []ItemField{
				{"Description", it.Description},
				{"Measures", it.Measures},
				{"Targets", it.Targets},
				{"Remarks", it.Remarks},
			},
			fields: []string{"refinedDescription", "refinedMeasures", "refinedTargets", "refinedRemarks"},
			schema: validation.SchemaInitiativeRefinement,
		}, nil
	case *models.Roadblock:
		return &refineTarget{
			startupID: it.StartupID,
			noun:      "roadblock",
			details: []ItemField{
				{"Risk Number", strconv.Itoa(it.RiskNumber)},
				{"Description", it.Description},
				{"Fix", it.Fix},
			},
			fields: []string{"refinedDescription", "refinedFix"},
			schema: validation.SchemaRoadblockRefinement,
		}, nil
	}
	return nil, fmt.Errorf("unexpected work item %T", item)
}
