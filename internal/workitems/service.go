// internal/workitems/service.go
package workitems

import (
	"context"
	"errors"
	"fmt"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/genai"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

type StartupReader interface {
	GetStartup(ctx context.Context, q database.DBTX, id int64) (*models.Startup, error)
	GetCapsuleProposal(ctx context.Context, q database.DBTX, startupID int64) (*models.CapsuleProposal, error)
}

type ReadinessStore interface {
	ListStartupLevels(ctx context.Context, q database.DBTX, startupID int64) ([]models.StartupReadinessLevel, error)
	FindCatalogEntry(ctx context.Context, q database.DBTX, readinessType models.ReadinessType, level int) (*models.ReadinessLevel, error)
	ListRNAs(ctx context.Context, q database.DBTX, startupID int64) ([]models.StartupRNA, error)
	ListRNAsByIDs(ctx context.Context, q database.DBTX, startupID int64, ids []int64) ([]models.StartupRNA, error)
	GetRNA(ctx context.Context, q database.DBTX, id int64) (*models.StartupRNA, error)
	InsertRNA(ctx context.Context, q database.DBTX, rna *models.StartupRNA) (int64, error)
}

type WorkItemStore interface {
	GetWorkItem(ctx context.Context, q database.DBTX, kind models.WorkItemKind, id int64) (models.Approvable, error)
	ListTasksByIDs(ctx context.Context, q database.DBTX, startupID int64, ids []int64) ([]models.Task, error)
	ListOpenTasks(ctx context.Context, q database.DBTX, startupID int64) ([]models.Task, error)
	ListOpenInitiatives(ctx context.Context, q database.DBTX, startupID int64) ([]models.Initiative, error)
	ShiftTaskPriorities(ctx context.Context, q database.DBTX, startupID int64, n int) (int64, error)
	ShiftInitiativeNumbers(ctx context.Context, q database.DBTX, startupID int64, n int) (int64, error)
	InsertTask(ctx context.Context, q database.DBTX, t *models.Task) (int64, error)
	InsertInitiative(ctx context.Context, q database.DBTX, i *models.Initiative) (int64, error)
	InsertRoadblock(ctx context.Context, q database.DBTX, rb *models.Roadblock) (int64, error)
}

// ChatStore persists refinement conversations.
type ChatStore interface {
	ListChatMessages(ctx context.Context, q database.DBTX, kind models.WorkItemKind, itemID int64) ([]models.ChatMessage, error)
	InsertChatMessage(ctx context.Context, q database.DBTX, m *models.ChatMessage) (int64, error)
}

// Locker serializes writes per (startup, kind).
type Locker interface {
	Acquire(ctx context.Context, startupID int64, kind models.WorkItemKind) (release func(), err error)
}

type Config struct {
	// MaxConcurrency bounds parallel generator calls within one batch.
	MaxConcurrency int
}

type Service struct {
	db        database.DBTX
	tx        database.Transactor
	startups  StartupReader
	readiness ReadinessStore
	items     WorkItemStore
	chats     ChatStore
	generator genai.Generator
	locker    Locker
	config    Config
	logger    logger.Logger
}

func NewService(db database.DBTX, tx database.Transactor, startups StartupReader, readiness ReadinessStore,
	items WorkItemStore, chats ChatStore, generator genai.Generator, locker Locker, config Config, log logger.Logger) *Service {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 1
	}
	return &Service{
		db:        db,
		tx:        tx,
		startups:  startups,
		readiness: readiness,
		items:     items,
		chats:     chats,
		generator: generator,
		locker:    locker,
		config:    config,
		logger:    log,
	}
}

// generationContext is what every prompt for one startup starts from.
type generationContext struct {
	startup *models.Startup
	levels  []models.StartupReadinessLevel
	base    BaseContext
}

func (s *Service) loadContext(ctx context.Context, startupID int64) (*generationContext, error) {
	startup, err := s.startups.GetStartup(ctx, s.db, startupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewResourceNotFoundError("Startup", fmt.Sprintf("startupId: %d", startupID))
	}
	if err != nil {
		return nil, err
	}

	proposal, err := s.startups.GetCapsuleProposal(ctx, s.db, startupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewPreconditionFailedError("No capsule proposal found.",
			fmt.Sprintf("startupId: %d", startupID))
	}
	if err != nil {
		return nil, err
	}

	levels, err := s.readiness.ListStartupLevels(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}

	return &generationContext{
		startup: startup,
		levels:  levels,
		base:    NewBaseContext(*proposal, levels),
	}, nil
}
