// internal/store/assessments.go
package store

import (
	"context"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"

	"github.com/lib/pq"
)

type AssessmentRepository struct{}

func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{}
}

func (r *AssessmentRepository) listTemplates(ctx context.Context, q database.DBTX, op, query string, args ...interface{}) ([]models.AssessmentTemplate, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	var templates []models.AssessmentTemplate
	for rows.Next() {
		var t models.AssessmentTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.AssessmentType, &t.AnswerType); err != nil {
			return nil, queryFailed(op, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}
	return templates, nil
}

func (r *AssessmentRepository) ListTemplates(ctx context.Context, q database.DBTX) ([]models.AssessmentTemplate, error) {
	return r.listTemplates(ctx, q, "list assessment templates", `
		SELECT id, name, assessment_type, answer_type
		FROM assessments
		ORDER BY id`)
}

// ListTemplatesByIDs returns the templates that exist among ids; unknown ids are simply absent.
func (r *AssessmentRepository) ListTemplatesByIDs(ctx context.Context, q database.DBTX, ids []int64) ([]models.AssessmentTemplate, error) {
	return r.listTemplates(ctx, q, "list assessment templates by ids", `
		SELECT id, name, assessment_type, answer_type
		FROM assessments
		WHERE id = ANY($1)
		ORDER BY id`, pq.Array(ids))
}

// FindTemplate looks a template up by its natural key.
func (r *AssessmentRepository) FindTemplate(ctx context.Context, q database.DBTX, name string, assessmentType models.AssessmentType, answerType models.AnswerType) (*models.AssessmentTemplate, error) {
	var t models.AssessmentTemplate
	err := q.QueryRowContext(ctx, `
		SELECT id, name, assessment_type, answer_type
		FROM assessments
		WHERE name = $1 AND assessment_type = $2 AND answer_type = $3
		ORDER BY id
		LIMIT 1`, name, assessmentType, answerType).
		Scan(&t.ID, &t.Name, &t.AssessmentType, &t.AnswerType)
	if err != nil {
		return nil, queryFailed("find assessment template", err)
	}
	return &t, nil
}

func (r *AssessmentRepository) InsertTemplate(ctx context.Context, q database.DBTX, t *models.AssessmentTemplate) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO assessments (name, assessment_type, answer_type)
		VALUES ($1, $2, $3)
		RETURNING id`, t.Name, t.AssessmentType, t.AnswerType).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert assessment template", err)
	}
	return id, nil
}

// ListAssignmentsByType returns every assignment the startup holds for
// templates of the given type, oldest first.
func (r *AssessmentRepository) ListAssignmentsByType(ctx context.Context, q database.DBTX, startupID int64, assessmentType models.AssessmentType) ([]models.StartupAssessment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT sa.id, sa.startup_id, sa.assessment_id, a.assessment_type, sa.status, sa.is_applicable
		FROM startup_assessments sa
		JOIN assessments a ON a.id = sa.assessment_id
		WHERE sa.startup_id = $1 AND a.assessment_type = $2
		ORDER BY sa.id`, startupID, assessmentType)
	if err != nil {
		return nil, queryFailed("list assignments by type", err)
	}
	defer rows.Close()

	var out []models.StartupAssessment
	for rows.Next() {
		var sa models.StartupAssessment
		if err := rows.Scan(&sa.ID, &sa.StartupID, &sa.AssessmentID, &sa.AssessmentType, &sa.Status, &sa.IsApplicable); err != nil {
			return nil, queryFailed("scan assignment", err)
		}
		out = append(out, sa)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate assignments by type", err)
	}
	return out, nil
}

func (r *AssessmentRepository) ListAssignedTemplateIDs(ctx context.Context, q database.DBTX, startupID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT assessment_id FROM startup_assessments WHERE startup_id = $1 ORDER BY id`, startupID)
	if err != nil {
		return nil, queryFailed("list assigned template ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, queryFailed("scan assigned template id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate assigned template ids", err)
	}
	return ids, nil
}

// InsertAssignment creates a Pending, applicable assignment.
func (r *AssessmentRepository) InsertAssignment(ctx context.Context, q database.DBTX, startupID, templateID int64) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO startup_assessments (startup_id, assessment_id, status, is_applicable)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id`, startupID, templateID, models.AssessmentPending).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert assignment", err)
	}
	return id, nil
}

func (r *AssessmentRepository) DeleteAssignment(ctx context.Context, q database.DBTX, id int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM startup_assessments WHERE id = $1`, id); err != nil {
		return queryFailed("delete assignment", err)
	}
	return nil
}
