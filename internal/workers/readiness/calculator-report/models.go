// internal/workers/readiness/calculator-report/models.go
package calculatorreport

import "accelerator-workers/internal/readiness"

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID              int64                      `json:"startupId"`
	Scores                 readiness.CalculatorScores `json:"scores"`
	TechnologyLevel        int                        `json:"technologyLevel"`
	CommercializationLevel int                        `json:"commercializationLevel"`
}
