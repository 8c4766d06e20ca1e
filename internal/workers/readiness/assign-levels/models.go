// internal/workers/readiness/assign-levels/models.go
package assignlevels

import "accelerator-workers/internal/models"

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID       int64                          `json:"startupId"`
	ReadinessLevels []models.StartupReadinessLevel `json:"readinessLevels"`
	// Levels maps the dimension abbreviation (TRL, MRL, ...) to the assigned level.
	Levels map[string]int `json:"levels"`
}
