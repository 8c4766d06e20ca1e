// internal/workers/readiness/aggregate-scores/models.go
package aggregatescores

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID int64          `json:"startupId"`
	Scores    map[string]int `json:"scores"`
}
