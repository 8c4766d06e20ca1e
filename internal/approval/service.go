// internal/approval/service.go
package approval

import (
	"context"
	"errors"
	"fmt"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/metrics"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

type Repository interface {
	GetWorkItem(ctx context.Context, q database.DBTX, kind models.WorkItemKind, id int64) (models.Approvable, error)
	UpdateApprovalState(ctx context.Context, q database.DBTX, kind models.WorkItemKind, id int64, state models.ApprovalState) error
}

type Service struct {
	tx     database.Transactor
	repo   Repository
	logger logger.Logger
}

func NewService(tx database.Transactor, repo Repository, log logger.Logger) *Service {
	return &Service{tx: tx, repo: repo, logger: log}
}

var resourceNames = map[models.WorkItemKind]string{
	models.KindTask:       "Task",
	models.KindInitiative: "Initiative",
	models.KindRoadblock:  "Roadblock",
}

// ApplyStatusTransition loads the item, applies the request and persists the
// new state unless it was a no-op.
func (s *Service) ApplyStatusTransition(ctx context.Context, kind models.WorkItemKind, itemID int64, role models.Role, newStatus models.Status) (models.Approvable, Outcome, error) {
	if !kind.Valid() {
		return nil, "", commonerrors.NewValidationFailedError("Invalid work item kind", string(kind))
	}
	if !newStatus.Valid() {
		return nil, "", commonerrors.NewValidationFailedError("Invalid status", fmt.Sprintf("status: %d", newStatus))
	}
	if role == "" {
		return nil, "", commonerrors.NewValidationFailedError("Actor role is required", "")
	}
	if !role.Valid() {
		return nil, "", commonerrors.NewValidationFailedError("Invalid actor role", string(role))
	}

	var (
		item    models.Approvable
		outcome Outcome
	)
	err := s.tx.WithTx(ctx, func(q database.DBTX) error {
		var err error
		item, err = s.repo.GetWorkItem(ctx, q, kind, itemID)
		if errors.Is(err, store.ErrNotFound) {
			return commonerrors.NewResourceNotFoundError(resourceNames[kind], fmt.Sprintf("id: %d", itemID))
		}
		if err != nil {
			return err
		}

		outcome = Apply(item, role, newStatus)
		if outcome == OutcomeNoop {
			return nil
		}
		return s.repo.UpdateApprovalState(ctx, q, kind, itemID, *item.State())
	})
	if err != nil {
		return nil, "", err
	}

	metrics.StatusTransitions.WithLabelValues(string(kind), string(outcome)).Inc()
	s.logger.Info("status transition applied", map[string]interface{}{
		"kind":           string(kind),
		"itemId":         itemID,
		"role":           string(role),
		"newStatus":      newStatus.String(),
		"outcome":        string(outcome),
		"approvalStatus": item.State().ApprovalStatus.String(),
	})
	return item, outcome, nil
}
