// internal/workers/assessment/assign-all/models.go
package assignall

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID     int64   `json:"startupId"`
	AssessmentIDs []int64 `json:"assessmentIds"`
	Assigned      int     `json:"assigned"`
}
