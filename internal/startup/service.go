// internal/startup/service.go
package startup

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
	GetStartup(ctx context.Context, q database.DBTX, id int64) (*models.Startup, error)
	UpdateQualificationStatus(ctx context.Context, q database.DBTX, id int64, status models.QualificationStatus) error
	InsertWaitlistMessage(ctx context.Context, q database.DBTX, msg *models.WaitlistMessage) (int64, error)
}

type ReadinessCounter interface {
	CountStartupLevels(ctx context.Context, q database.DBTX, startupID int64) (int, error)
	CountRNAs(ctx context.Context, q database.DBTX, startupID int64) (int, error)
}

// TemplateAssigner hands a newly qualified startup every assessment template.
type TemplateAssigner interface {
	AssignAllWithin(ctx context.Context, q database.DBTX, startupID int64) ([]int64, error)
}

// Mailer is satisfied by aws.SESClient.
type Mailer interface {
	SendText(ctx context.Context, to, subject, body string) error
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) (events.Event, error)
}

type Config struct {
	ProgramName string
}

type Service struct {
	db        database.DBTX
	tx        database.Transactor
	repo      Repository
	readiness ReadinessCounter
	templates TemplateAssigner
	mailer    Mailer
	publisher Publisher
	config    Config
	logger    logger.Logger
}

// NewService builds the lifecycle service. mailer may be nil, which disables
// approval emails.
func NewService(db database.DBTX, tx database.Transactor, repo Repository, readiness ReadinessCounter,
	templates TemplateAssigner, mailer Mailer, publisher Publisher, config Config, log logger.Logger) *Service {
	if config.ProgramName == "" {
		config.ProgramName = "the accelerator program"
	}
	return &Service{
		db:        db,
		tx:        tx,
		repo:      repo,
		readiness: readiness,
		templates: templates,
		mailer:    mailer,
		publisher: publisher,
		config:    config,
		logger:    log,
	}
}

func (s *Service) requireStartup(ctx context.Context, startupID int64) (*models.Startup, error) {
	startup, err := s.repo.GetStartup(ctx, s.db, startupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewResourceNotFoundError("Startup", fmt.Sprintf("startupId: %d", startupID))
	}
	return startup, err
}

// Gates tells the caller which generation steps are open for a startup.
type Gates struct {
	AllowRNAs        bool `json:"allowRNAs"`
	AllowTasks       bool `json:"allowTasks"`
	AllowInitiatives bool `json:"allowInitiatives"`
	AllowRoadblocks  bool `json:"allowRoadblocks"`
}

// GenerationGates opens RNA generation once readiness levels exist and the
// work item kinds once at least one RNA exists.
func (s *Service) GenerationGates(ctx context.Context, startupID int64) (*Gates, error) {
	if _, err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	levels, err := s.readiness.CountStartupLevels(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}
	rnas, err := s.readiness.CountRNAs(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}
	return &Gates{
		AllowRNAs:        levels > 0,
		AllowTasks:       rnas > 0,
		AllowInitiatives: rnas > 0,
		AllowRoadblocks:  rnas > 0,
	}, nil
}
