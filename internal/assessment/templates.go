// internal/assessment/templates.go
package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/events"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

type CreateTemplateResult struct {
	Template models.AssessmentTemplate `json:"template"`
	EventID  string                    `json:"eventId,omitempty"`
	// Existing is set when a template with the same name, type and answer
	// type was already stored and has been announced again.
	Existing bool `json:"existing,omitempty"`
}

// CreateTemplate stores a new template and announces it. Subscribers assign
// it to every qualified startup. A failed announcement returns a retryable
// EVENT_PUBLISH_FAILED error after the template is committed; the retried
// job finds the stored template by its natural key and announces it again.
func (s *Service) CreateTemplate(ctx context.Context, name string, assessmentType models.AssessmentType, answerType models.AnswerType) (*CreateTemplateResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, commonerrors.NewValidationFailedError("Template name is required", "")
	}
	if !assessmentType.Valid() {
		return nil, commonerrors.NewValidationFailedError("Invalid assessment type", string(assessmentType))
	}
	if !answerType.Valid() {
		return nil, commonerrors.NewValidationFailedError("Invalid answer type", fmt.Sprintf("answerType: %d", answerType))
	}

	result := &CreateTemplateResult{
		Template: models.AssessmentTemplate{Name: name, AssessmentType: assessmentType, AnswerType: answerType},
	}
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		existing, err := s.repo.FindTemplate(ctx, q, name, assessmentType, answerType)
		if err == nil {
			result.Template = *existing
			result.Existing = true
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		id, err := s.repo.InsertTemplate(ctx, q, &result.Template)
		if err != nil {
			return err
		}
		result.Template.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev, err := s.publisher.Publish(ctx, events.TypeTemplateCreated, events.TemplateCreated{
		TemplateID:     result.Template.ID,
		AssessmentType: result.Template.AssessmentType,
	})
	if err != nil {
		s.logger.WithError(err).Error("template created event failed", map[string]interface{}{
			"templateId": result.Template.ID,
		})
		return nil, commonerrors.NewEventPublishFailedError(events.TypeTemplateCreated, err)
	}
	result.EventID = ev.ID
	return result, nil
}

// HandleTemplateCreated assigns the new template to every qualified startup
// that does not hold it yet.
func (s *Service) HandleTemplateCreated(ctx context.Context, ev events.Event) error {
	payload, ok := ev.Payload.(events.TemplateCreated)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", ev.Payload, ev.Type)
	}

	startups, err := s.startups.ListStartupsByQualification(ctx, s.db, models.QualificationQualified)
	if err != nil {
		return err
	}

	assigned := 0
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		for _, startup := range startups {
			ids, err := s.repo.ListAssignedTemplateIDs(ctx, q, startup.ID)
			if err != nil {
				return err
			}
			if containsID(ids, payload.TemplateID) {
				continue
			}
			if _, err := s.repo.InsertAssignment(ctx, q, startup.ID, payload.TemplateID); err != nil {
				return err
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.AssessmentAssignments.WithLabelValues(StatusAssigned).Add(float64(assigned))
	s.logger.Info("template assigned to qualified startups", map[string]interface{}{
		"templateId": payload.TemplateID,
		"startups":   len(startups),
		"assigned":   assigned,
	})
	return nil
}

// AssignAllTemplates gives the startup every template it does not hold yet,
// comparing template ids only.
func (s *Service) AssignAllTemplates(ctx context.Context, startupID int64) ([]int64, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	var assigned []int64
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		assigned, err = s.AssignAllWithin(ctx, q, startupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// AssignAllWithin is AssignAllTemplates on the caller's transaction.
func (s *Service) AssignAllWithin(ctx context.Context, q database.DBTX, startupID int64) ([]int64, error) {
	templates, err := s.repo.ListTemplates(ctx, q)
	if err != nil {
		return nil, err
	}
	held, err := s.repo.ListAssignedTemplateIDs(ctx, q, startupID)
	if err != nil {
		return nil, err
	}

	assigned := []int64{}
	for _, t := range templates {
		if containsID(held, t.ID) {
			continue
		}
		if _, err := s.repo.InsertAssignment(ctx, q, startupID, t.ID); err != nil {
			return nil, err
		}
		held = append(held, t.ID)
		assigned = append(assigned, t.ID)
	}

	metrics.AssessmentAssignments.WithLabelValues(StatusAssigned).Add(float64(len(assigned)))
	return assigned, nil
}
