// internal/store/answers.go
package store

import (
	"context"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"

	"github.com/lib/pq"
)

// AnswerRepository reads the rubric (URAT) and calculator questionnaire answers.
type AnswerRepository struct{}

func NewAnswerRepository() *AnswerRepository {
	return &AnswerRepository{}
}

func (r *AnswerRepository) ListURATAnswers(ctx context.Context, q database.DBTX, startupID int64) ([]models.QuestionAnswer, error) {
	return r.list(ctx, q, "list urat answers", `
		SELECT id, startup_id, question_id, readiness_type, score
		FROM urat_answers
		WHERE startup_id = $1
		ORDER BY id`, startupID)
}

func (r *AnswerRepository) ListCalculatorAnswers(ctx context.Context, q database.DBTX, startupID int64) ([]models.QuestionAnswer, error) {
	return r.list(ctx, q, "list calculator answers", `
		SELECT id, startup_id, question_id, category, score
		FROM calculator_answers
		WHERE startup_id = $1
		ORDER BY id`, startupID)
}

func (r *AnswerRepository) ListURATAnswersForStartups(ctx context.Context, q database.DBTX, startupIDs []int64) ([]models.QuestionAnswer, error) {
	return r.list(ctx, q, "list urat answers for startups", `
		SELECT id, startup_id, question_id, readiness_type, score
		FROM urat_answers
		WHERE startup_id = ANY($1)
		ORDER BY startup_id, id`, pq.Array(startupIDs))
}

func (r *AnswerRepository) ListCalculatorAnswersForStartups(ctx context.Context, q database.DBTX, startupIDs []int64) ([]models.QuestionAnswer, error) {
	return r.list(ctx, q, "list calculator answers for startups", `
		SELECT id, startup_id, question_id, category, score
		FROM calculator_answers
		WHERE startup_id = ANY($1)
		ORDER BY startup_id, id`, pq.Array(startupIDs))
}

func (r *AnswerRepository) list(ctx context.Context, q database.DBTX, op, query string, args ...interface{}) ([]models.QuestionAnswer, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryFailed(op, err)
	}
	defer rows.Close()

	var answers []models.QuestionAnswer
	for rows.Next() {
		var a models.QuestionAnswer
		if err := rows.Scan(&a.ID, &a.StartupID, &a.QuestionID, &a.Category, &a.Score); err != nil {
			return nil, queryFailed(op, err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed(op, err)
	}
	return answers, nil
}
