// internal/workers/assessment/reconcile/models.go
package reconcile

import "accelerator-workers/internal/assessment"

type Input struct {
	StartupID     int64   `json:"startupId"`
	AssessmentIDs []int64 `json:"assessmentIds"`
}

type Output struct {
	StartupID int64                         `json:"startupId"`
	Assigned  int                           `json:"assigned"`
	Replaced  int                           `json:"replaced"`
	Skipped   []int64                       `json:"skipped"`
	Results   []assessment.AssignmentResult `json:"results"`
}
