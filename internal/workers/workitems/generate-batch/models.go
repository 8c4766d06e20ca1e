// internal/workers/workitems/generate-batch/models.go
package generatebatch

import "accelerator-workers/internal/models"

type Input struct {
	StartupID      int64               `json:"startupId"`
	Kind           models.WorkItemKind `json:"kind"`
	RequestedCount int                 `json:"requestedCount"`
	Context        GenerationContext   `json:"context"`
}

// GenerationContext names the records a batch is generated from: RNAs for
// tasks, tasks for initiatives. Roadblocks need neither.
type GenerationContext struct {
	RNAIDs  []int64 `json:"rnaIds,omitempty"`
	TaskIDs []int64 `json:"taskIds,omitempty"`
}

type Output struct {
	Kind        models.WorkItemKind `json:"kind"`
	Count       int                 `json:"count"`
	Shifted     int64               `json:"shifted"`
	Tasks       []models.Task       `json:"tasks,omitempty"`
	Initiatives []models.Initiative `json:"initiatives,omitempty"`
	Roadblocks  []models.Roadblock  `json:"roadblocks,omitempty"`
}
