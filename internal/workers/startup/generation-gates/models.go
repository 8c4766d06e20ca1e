// internal/workers/startup/generation-gates/models.go
package generationgates

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID        int64 `json:"startupId"`
	AllowRNAs        bool  `json:"allowRNAs"`
	AllowTasks       bool  `json:"allowTasks"`
	AllowInitiatives bool  `json:"allowInitiatives"`
	AllowRoadblocks  bool  `json:"allowRoadblocks"`
}
