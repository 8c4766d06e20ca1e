// internal/readiness/service.go
package readiness

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

type StartupReader interface {
	GetStartup(ctx context.Context, q database.DBTX, id int64) (*models.Startup, error)
	ListStartupsByQualification(ctx context.Context, q database.DBTX, status models.QualificationStatus) ([]models.Startup, error)
}

type AnswerReader interface {
	ListURATAnswers(ctx context.Context, q database.DBTX, startupID int64) ([]models.QuestionAnswer, error)
	ListCalculatorAnswers(ctx context.Context, q database.DBTX, startupID int64) ([]models.QuestionAnswer, error)
	ListURATAnswersForStartups(ctx context.Context, q database.DBTX, startupIDs []int64) ([]models.QuestionAnswer, error)
	ListCalculatorAnswersForStartups(ctx context.Context, q database.DBTX, startupIDs []int64) ([]models.QuestionAnswer, error)
}

type LevelStore interface {
	FindCatalogEntry(ctx context.Context, q database.DBTX, readinessType models.ReadinessType, level int) (*models.ReadinessLevel, error)
	FindStartupLevel(ctx context.Context, q database.DBTX, startupID int64, readinessType models.ReadinessType) (*models.StartupReadinessLevel, error)
	InsertStartupLevel(ctx context.Context, q database.DBTX, startupID int64, level models.ReadinessLevel) (int64, error)
	UpdateStartupLevel(ctx context.Context, q database.DBTX, id int64, level models.ReadinessLevel) error
}

// Catalog supplies the level catalog; CatalogCache is the production source.
type Catalog interface {
	Catalog(ctx context.Context) ([]models.ReadinessLevel, error)
}

type Service struct {
	db       database.DBTX
	tx       database.Transactor
	startups StartupReader
	answers  AnswerReader
	levels   LevelStore
	catalog  Catalog
	logger   logger.Logger
}

func NewService(db database.DBTX, tx database.Transactor, startups StartupReader, answers AnswerReader,
	levels LevelStore, catalog Catalog, log logger.Logger) *Service {
	return &Service{
		db:       db,
		tx:       tx,
		startups: startups,
		answers:  answers,
		levels:   levels,
		catalog:  catalog,
		logger:   log,
	}
}

func (s *Service) requireStartup(ctx context.Context, startupID int64) (*models.Startup, error) {
	startup, err := s.startups.GetStartup(ctx, s.db, startupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewResourceNotFoundError("Startup", fmt.Sprintf("startupId: %d", startupID))
	}
	return startup, err
}

// AggregateScores sums the startup's rubric answers per readiness dimension.
func (s *Service) AggregateScores(ctx context.Context, startupID int64) (map[string]int, error) {
	if _, err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	answers, err := s.answers.ListURATAnswers(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}
	return AggregateScores(answers), nil
}

func (s *Service) CalculatorReport(ctx context.Context, startupID int64) (*CalculatorReport, error) {
	if _, err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}
	answers, err := s.answers.ListCalculatorAnswers(ctx, s.db, startupID)
	if err != nil {
		return nil, err
	}
	report := BuildCalculatorReport(answers)
	return &report, nil
}

// NormalizeAndAssign derives one level per dimension from the rubric answers
// and writes all six assignments in one transaction. Existing assignments
// are not checked.
func (s *Service) NormalizeAndAssign(ctx context.Context, startupID int64) ([]models.StartupReadinessLevel, error) {
	scores, err := s.AggregateScores(ctx, startupID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	byType := groupCatalog(catalog)

	selections := make([]Selection, 0, len(models.ReadinessTypes))
	for _, rt := range models.ReadinessTypes {
		scaled := Normalize(scores[string(rt)])
		sel, ok := SelectLevel(scaled, byType[rt])
		if !ok {
			return nil, commonerrors.NewResourceNotFoundError("Readiness level",
				fmt.Sprintf("readinessType: %s, level: %d", rt, scaled))
		}
		if sel.Fallback {
			metrics.ReadinessFallbackLevels.WithLabelValues(string(rt)).Inc()
			s.logger.Warn("no catalog entry for scaled level, using fallback", map[string]interface{}{
				"startupId":     startupID,
				"readinessType": string(rt),
				"rawScore":      scores[string(rt)],
				"scaled":        scaled,
				"fallbackLevel": sel.Level.Level,
			})
		}
		selections = append(selections, sel)
	}

	assigned := make([]models.StartupReadinessLevel, 0, len(selections))
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		for _, sel := range selections {
			id, err := s.levels.InsertStartupLevel(ctx, q, startupID, sel.Level)
			if err != nil {
				return err
			}
			assigned = append(assigned, models.StartupReadinessLevel{
				ID:             id,
				StartupID:      startupID,
				ReadinessLevel: sel.Level,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("readiness levels assigned", map[string]interface{}{
		"startupId": startupID,
		"count":     len(assigned),
	})
	return assigned, nil
}

// RateDimension sets one dimension to an explicit level, updating the
// existing assignment when there is one.
func (s *Service) RateDimension(ctx context.Context, startupID int64, readinessType models.ReadinessType, level int) (*models.StartupReadinessLevel, error) {
	if !readinessType.Valid() {
		return nil, commonerrors.NewValidationFailedError("Invalid readiness type", string(readinessType))
	}
	if level < models.MinReadinessLevel || level > models.MaxReadinessLevel {
		return nil, commonerrors.NewValidationFailedError("Readiness level must be between 1 and 9",
			fmt.Sprintf("level: %d", level))
	}
	if _, err := s.requireStartup(ctx, startupID); err != nil {
		return nil, err
	}

	entry, err := s.levels.FindCatalogEntry(ctx, s.db, readinessType, level)
	if errors.Is(err, store.ErrNotFound) {
		return nil, commonerrors.NewResourceNotFoundError("Readiness level",
			fmt.Sprintf("readinessType: %s, level: %d", readinessType, level))
	}
	if err != nil {
		return nil, err
	}

	var result models.StartupReadinessLevel
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		existing, err := s.levels.FindStartupLevel(ctx, q, startupID, readinessType)
		switch {
		case err == nil:
			if err := s.levels.UpdateStartupLevel(ctx, q, existing.ID, *entry); err != nil {
				return err
			}
			result = models.StartupReadinessLevel{ID: existing.ID, StartupID: startupID, ReadinessLevel: *entry}
			return nil
		case errors.Is(err, store.ErrNotFound):
			id, err := s.levels.InsertStartupLevel(ctx, q, startupID, *entry)
			if err != nil {
				return err
			}
			result = models.StartupReadinessLevel{ID: id, StartupID: startupID, ReadinessLevel: *entry}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RankPendingStartups orders every Pending startup by URAT total plus
// calculator technology level.
func (s *Service) RankPendingStartups(ctx context.Context) ([]RankedStartup, error) {
	startups, err := s.startups.ListStartupsByQualification(ctx, s.db, models.QualificationPending)
	if err != nil {
		return nil, err
	}
	if len(startups) == 0 {
		return []RankedStartup{}, nil
	}

	ids := make([]int64, len(startups))
	for i, st := range startups {
		ids[i] = st.ID
	}

	urat, err := s.answers.ListURATAnswersForStartups(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	calc, err := s.answers.ListCalculatorAnswersForStartups(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	return Rank(startups, urat, calc), nil
}
