// internal/workers/readiness/rank-pending/models.go
package rankpending

import "accelerator-workers/internal/readiness"

type Input struct {
	// Limit overrides the configured limit when positive.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	Ranking []readiness.RankedStartup `json:"ranking"`
	Total   int                       `json:"total"`
}
