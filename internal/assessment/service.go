// internal/assessment/service.go
package assessment

import (
	"context"
	"errors"
	"fmt"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/events"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

type Repository interface {
	ListTemplates(ctx context.Context, q database.DBTX) ([]models.AssessmentTemplate, error)
	ListTemplatesByIDs(ctx context.Context, q database.DBTX, ids []int64) ([]models.AssessmentTemplate, error)
	InsertTemplate(ctx context.Context, q database.DBTX, t *models.AssessmentTemplate) (int64, error)
	FindTemplate(ctx context.Context, q database.DBTX, name string, assessmentType models.AssessmentType, answerType models.AnswerType) (*models.AssessmentTemplate, error)
	ListAssignmentsByType(ctx context.Context, q database.DBTX, startupID int64, assessmentType models.AssessmentType) ([]models.StartupAssessment, error)
	ListAssignedTemplateIDs(ctx context.Context, q database.DBTX, startupID int64) ([]int64, error)
	InsertAssignment(ctx context.Context, q database.DBTX, startupID, templateID int64) (int64, error)
	DeleteAssignment(ctx context.Context, q database.DBTX, id int64) error
}

type StartupReader interface {
	GetStartup(ctx context.Context, q database.DBTX, id int64) (*models.Startup, error)
	ListStartupsByQualification(ctx context.Context, q database.DBTX, status models.QualificationStatus) ([]models.Startup, error)
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) (events.Event, error)
}

type Service struct {
	db        database.DBTX
	tx        database.Transactor
	repo      Repository
	startups  StartupReader
	publisher Publisher
	logger    logger.Logger
}

func NewService(db database.DBTX, tx database.Transactor, repo Repository, startups StartupReader,
	publisher Publisher, log logger.Logger) *Service {
	return &Service{
		db:        db,
		tx:        tx,
		repo:      repo,
		startups:  startups,
		publisher: publisher,
		logger:    log,
	}
}

func (s *Service) requireStartup(ctx context.Context, startupID int64) error {
	_, err := s.startups.GetStartup(ctx, s.db, startupID)
	if errors.Is(err, store.ErrNotFound) {
		return commonerrors.NewResourceNotFoundError("Startup", fmt.Sprintf("startupId: %d", startupID))
	}
	return err
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
