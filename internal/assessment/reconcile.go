// internal/assessment/reconcile.go
package assessment

import (
	"context"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/models"
)

const (
	StatusAssigned = "assigned"
	StatusReplaced = "replaced"
)

type AssignmentResult struct {
	AssessmentID int64  `json:"assessmentId"`
	Status       string `json:"status"`
}

type ReconcileResult struct {
	Assigned int                `json:"assigned"`
	Replaced int                `json:"replaced"`
	Skipped  []int64            `json:"skipped"`
	Results  []AssignmentResult `json:"results"`
}

// ReconcileAssignments gives the startup each requested template while
// keeping at most one assignment per assessment type. A template of a type
// the startup already holds replaces the old assignment. Unknown ids and
// templates already assigned are skipped.
func (s *Service) ReconcileAssignments(ctx context.Context, startupID int64, templateIDs []int64) (*ReconcileResult, error) {
	if err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}

	templates, err := s.repo.ListTemplatesByIDs(ctx, s.db, templateIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.AssessmentTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}

	result := &ReconcileResult{Skipped: []int64{}, Results: []AssignmentResult{}}
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		for _, id := range templateIDs {
			template, ok := byID[id]
			if !ok {
				s.logger.Warn("skipping unknown assessment template", map[string]interface{}{
					"startupId":  startupID,
					"templateId": id,
				})
				result.Skipped = append(result.Skipped, id)
				continue
			}

			status, err := s.reconcileOne(ctx, q, startupID, template)
			if err != nil {
				return err
			}
			if status == "" {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			if status == StatusReplaced {
				result.Replaced++
			} else {
				result.Assigned++
			}
			result.Results = append(result.Results, AssignmentResult{AssessmentID: id, Status: status})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AssessmentAssignments.WithLabelValues(StatusAssigned).Add(float64(result.Assigned))
	metrics.AssessmentAssignments.WithLabelValues(StatusReplaced).Add(float64(result.Replaced))
	metrics.AssessmentAssignments.WithLabelValues("skipped").Add(float64(len(result.Skipped)))
	s.logger.Info("assessments reconciled", map[string]interface{}{
		"startupId": startupID,
		"assigned":  result.Assigned,
		"replaced":  result.Replaced,
		"skipped":   len(result.Skipped),
	})
	return result, nil
}

// reconcileOne returns the outcome for one template, or "" when the startup
// already holds exactly that template. Any other assignment of the same type
// is removed before the requested one is inserted.
func (s *Service) reconcileOne(ctx context.Context, q database.DBTX, startupID int64, template models.AssessmentTemplate) (string, error) {
	sameType, err := s.repo.ListAssignmentsByType(ctx, q, startupID, template.AssessmentType)
	if err != nil {
		return "", err
	}
	for _, a := range sameType {
		if a.AssessmentID == template.ID {
			return "", nil
		}
	}

	if _, err := s.repo.InsertAssignment(ctx, q, startupID, template.ID); err != nil {
		return "", err
	}
	if len(sameType) == 0 {
		return StatusAssigned, nil
	}

	replaced := make([]int64, 0, len(sameType))
	for _, a := range sameType {
		if err := s.repo.DeleteAssignment(ctx, q, a.ID); err != nil {
			return "", err
		}
		replaced = append(replaced, a.AssessmentID)
	}
	s.logger.Debug("assessment assignment replaced", map[string]interface{}{
		"startupId":      startupID,
		"assessmentType": string(template.AssessmentType),
		"oldTemplateIds": replaced,
		"newTemplateId":  template.ID,
	})
	return StatusReplaced, nil
}
