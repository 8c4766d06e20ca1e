// internal/workers/readiness/rate-dimension/models.go
package ratedimension

import "accelerator-workers/internal/models"

type Input struct {
	StartupID     int64                `json:"startupId"`
	ReadinessType models.ReadinessType `json:"readinessType"`
	Level         int                  `json:"level"`
}

type Output struct {
	ReadinessLevel models.StartupReadinessLevel `json:"readinessLevel"`
}
