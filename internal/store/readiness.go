// internal/store/readiness.go
package store

import (
	"context"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"

	"github.com/lib/pq"
)

// ReadinessRepository covers the level catalog, per-startup level
// assignments and RNAs.
type ReadinessRepository struct{}

func NewReadinessRepository() *ReadinessRepository {
	return &ReadinessRepository{}
}

// ==========================
// Catalog
// ==========================

func (r *ReadinessRepository) ListCatalog(ctx context.Context, q database.DBTX) ([]models.ReadinessLevel, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, readiness_type, level, COALESCE(name, '')
		FROM readiness_levels
		ORDER BY readiness_type, level`)
	if err != nil {
		return nil, queryFailed("list readiness catalog", err)
	}
	defer rows.Close()

	var levels []models.ReadinessLevel
	for rows.Next() {
		var l models.ReadinessLevel
		if err := rows.Scan(&l.ID, &l.ReadinessType, &l.Level, &l.Name); err != nil {
			return nil, queryFailed("scan readiness level", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate readiness catalog", err)
	}
	return levels, nil
}

func (r *ReadinessRepository) FindCatalogEntry(ctx context.Context, q database.DBTX, readinessType models.ReadinessType, level int) (*models.ReadinessLevel, error) {
	var l models.ReadinessLevel
	err := q.QueryRowContext(ctx, `
		SELECT id, readiness_type, level, COALESCE(name, '')
		FROM readiness_levels
		WHERE readiness_type = $1 AND level = $2`, readinessType, level).
		Scan(&l.ID, &l.ReadinessType, &l.Level, &l.Name)
	if err != nil {
		return nil, queryFailed("find readiness level", err)
	}
	return &l, nil
}

// ==========================
// Startup readiness levels
// ==========================

const startupLevelSelect = `
		SELECT srl.id, srl.startup_id, rl.id, rl.readiness_type, rl.level, COALESCE(rl.name, '')
		FROM startup_readiness_levels srl
		JOIN readiness_levels rl ON rl.id = srl.readiness_level_id`

func scanStartupLevel(row scanner) (*models.StartupReadinessLevel, error) {
	var s models.StartupReadinessLevel
	err := row.Scan(&s.ID, &s.StartupID, &s.ReadinessLevel.ID, &s.ReadinessLevel.ReadinessType,
		&s.ReadinessLevel.Level, &s.ReadinessLevel.Name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ReadinessRepository) ListStartupLevels(ctx context.Context, q database.DBTX, startupID int64) ([]models.StartupReadinessLevel, error) {
	rows, err := q.QueryContext(ctx, startupLevelSelect+`
		WHERE srl.startup_id = $1
		ORDER BY srl.id`, startupID)
	if err != nil {
		return nil, queryFailed("list startup readiness levels", err)
	}
	defer rows.Close()

	var levels []models.StartupReadinessLevel
	for rows.Next() {
		l, err := scanStartupLevel(rows)
		if err != nil {
			return nil, queryFailed("scan startup readiness level", err)
		}
		levels = append(levels, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate startup readiness levels", err)
	}
	return levels, nil
}

func (r *ReadinessRepository) FindStartupLevel(ctx context.Context, q database.DBTX, startupID int64, readinessType models.ReadinessType) (*models.StartupReadinessLevel, error) {
	row := q.QueryRowContext(ctx, startupLevelSelect+`
		WHERE srl.startup_id = $1 AND srl.readiness_type = $2
		ORDER BY srl.id
		LIMIT 1`, startupID, readinessType)

	l, err := scanStartupLevel(row)
	if err != nil {
		return nil, queryFailed("find startup readiness level", err)
	}
	return l, nil
}

func (r *ReadinessRepository) InsertStartupLevel(ctx context.Context, q database.DBTX, startupID int64, level models.ReadinessLevel) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO startup_readiness_levels (startup_id, readiness_level_id, readiness_type)
		VALUES ($1, $2, $3)
		RETURNING id`, startupID, level.ID, level.ReadinessType).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert startup readiness level", err)
	}
	return id, nil
}

func (r *ReadinessRepository) UpdateStartupLevel(ctx context.Context, q database.DBTX, id int64, level models.ReadinessLevel) error {
	_, err := q.ExecContext(ctx, `
		UPDATE startup_readiness_levels SET readiness_level_id = $1 WHERE id = $2`, level.ID, id)
	if err != nil {
		return queryFailed("update startup readiness level", err)
	}
	return nil
}

func (r *ReadinessRepository) CountStartupLevels(ctx context.Context, q database.DBTX, startupID int64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM startup_readiness_levels WHERE startup_id = $1`, startupID).Scan(&n)
	if err != nil {
		return 0, queryFailed("count startup readiness levels", err)
	}
	return n, nil
}

// ==========================
// RNAs
// ==========================

const rnaSelect = `
		SELECT sr.id, sr.startup_id, sr.rna, sr.is_ai_generated,
		       rl.id, rl.readiness_type, rl.level, COALESCE(rl.name, '')
		FROM startup_rnas sr
		JOIN readiness_levels rl ON rl.id = sr.readiness_level_id`

func (r *ReadinessRepository) ListRNAs(ctx context.Context, q database.DBTX, startupID int64) ([]models.StartupRNA, error) {
	return r.listRNAs(ctx, q, rnaSelect+`
		WHERE sr.startup_id = $1
		ORDER BY sr.id`, startupID)
}

// ListRNAsByIDs returns only the RNAs among ids that belong to startupID.
func (r *ReadinessRepository) ListRNAsByIDs(ctx context.Context, q database.DBTX, startupID int64, ids []int64) ([]models.StartupRNA, error) {
	return r.listRNAs(ctx, q, rnaSelect+`
		WHERE sr.startup_id = $1 AND sr.id = ANY($2)
		ORDER BY sr.id`, startupID, pq.Array(ids))
}

func (r *ReadinessRepository) GetRNA(ctx context.Context, q database.DBTX, id int64) (*models.StartupRNA, error) {
	var rna models.StartupRNA
	err := q.QueryRowContext(ctx, rnaSelect+`
		WHERE sr.id = $1`, id).
		Scan(&rna.ID, &rna.StartupID, &rna.RNA, &rna.IsAIGenerated,
			&rna.ReadinessLevel.ID, &rna.ReadinessLevel.ReadinessType, &rna.ReadinessLevel.Level, &rna.ReadinessLevel.Name)
	if err != nil {
		return nil, queryFailed("get rna", err)
	}
	return &rna, nil
}

func (r *ReadinessRepository) listRNAs(ctx context.Context, q database.DBTX, query string, args ...interface{}) ([]models.StartupRNA, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed("list rnas", err)
	}
	defer rows.Close()

	var rnas []models.StartupRNA
	for rows.Next() {
		var rna models.StartupRNA
		err := rows.Scan(&rna.ID, &rna.StartupID, &rna.RNA, &rna.IsAIGenerated,
			&rna.ReadinessLevel.ID, &rna.ReadinessLevel.ReadinessType, &rna.ReadinessLevel.Level, &rna.ReadinessLevel.Name)
		if err != nil {
			return nil, queryFailed("scan rna", err)
		}
		rnas = append(rnas, rna)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate rnas", err)
	}
	return rnas, nil
}

func (r *ReadinessRepository) InsertRNA(ctx context.Context, q database.DBTX, rna *models.StartupRNA) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO startup_rnas (startup_id, readiness_level_id, rna, is_ai_generated)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, rna.StartupID, rna.ReadinessLevel.ID, rna.RNA, rna.IsAIGenerated).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert rna", err)
	}
	return id, nil
}

func (r *ReadinessRepository) CountRNAs(ctx context.Context, q database.DBTX, startupID int64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM startup_rnas WHERE startup_id = $1`, startupID).Scan(&n)
	if err != nil {
		return 0, queryFailed("count rnas", err)
	}
	return n, nil
}
