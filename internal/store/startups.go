// internal/store/startups.go
package store

import (
	"context"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"
)

type StartupRepository struct{}

func NewStartupRepository() *StartupRepository {
	return &StartupRepository{}
}

const startupColumns = `s.id, s.user_id, COALESCE(u.email, ''), s.name, s.qualification_status`

func scanStartup(row scanner) (*models.Startup, error) {
	var s models.Startup
	if err := row.Scan(&s.ID, &s.UserID, &s.UserEmail, &s.Name, &s.QualificationStatus); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StartupRepository) GetStartup(ctx context.Context, q database.DBTX, id int64) (*models.Startup, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`, id)

	s, err := scanStartup(row)
	if err != nil {
		return nil, queryFailed("get startup", err)
	}
	return s, nil
}

func (r *StartupRepository) ListStartupsByQualification(ctx context.Context, q database.DBTX, status models.QualificationStatus) ([]models.Startup, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.qualification_status = $1
		ORDER BY s.id`, status)
	if err != nil {
		return nil, queryFailed("list startups by qualification", err)
	}
	defer rows.Close()

	var startups []models.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, queryFailed("scan startup", err)
		}
		startups = append(startups, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate startups", err)
	}
	return startups, nil
}

func (r *StartupRepository) UpdateQualificationStatus(ctx context.Context, q database.DBTX, id int64, status models.QualificationStatus) error {
	res, err := q.ExecContext(ctx, `
		UPDATE startups SET qualification_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return queryFailed("update qualification status", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StartupRepository) InsertWaitlistMessage(ctx context.Context, q database.DBTX, msg *models.WaitlistMessage) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO startup_waitlist_messages (startup_id, manager_id, message)
		VALUES ($1, $2, $3)
		RETURNING id`, msg.StartupID, msg.ManagerID, msg.Message).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert waitlist message", err)
	}
	return id, nil
}

// GetCapsuleProposal returns ErrNotFound when the startup has not submitted one.
func (r *StartupRepository) GetCapsuleProposal(ctx context.Context, q database.DBTX, startupID int64) (*models.CapsuleProposal, error) {
	var p models.CapsuleProposal
	err := q.QueryRowContext(ctx, `
		SELECT startup_id, title, description, problem_statement, target_market,
		       solution_description, objectives, scope, methodology
		FROM capsule_proposals
		WHERE startup_id = $1
		LIMIT 1`, startupID).Scan(
		&p.StartupID, &p.Title, &p.Description, &p.ProblemStatement, &p.TargetMarket,
		&p.SolutionDescription, &p.Objectives, &p.Scope, &p.Methodology,
	)
	if err != nil {
		return nil, queryFailed("get capsule proposal", err)
	}
	return &p, nil
}
