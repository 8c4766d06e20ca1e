// internal/readiness/aggregate.go
package readiness

import "accelerator-workers/internal/models"

// AggregateScores sums answer scores per category key. Every readiness
// dimension is present in the result, with 0 when it has no answers.
func AggregateScores(answers []models.QuestionAnswer) map[string]int {
	scores := make(map[string]int, len(models.ReadinessTypes))
	for _, rt := range models.ReadinessTypes {
		scores[string(rt)] = 0
	}
	for _, a := range answers {
		scores[a.Category] += a.Score
	}
	return scores
}

// sumScores totals every answer regardless of category.
func sumScores(answers []models.QuestionAnswer) int {
	total := 0
	for _, a := range answers {
		total += a.Score
	}
	return total
}
