// internal/workers/workitems/refine-item/models.go
package refineitem

import "accelerator-workers/internal/models"

type Input struct {
	Kind   models.WorkItemKind `json:"kind"`
	ItemID int64               `json:"itemId"`
	Prompt string              `json:"prompt"`
}

type Output struct {
	Kind        models.WorkItemKind  `json:"kind"`
	ItemID      int64                `json:"itemId"`
	StartupID   int64                `json:"startupId"`
	Refinements map[string]string    `json:"refinements"`
	Commentary  string               `json:"commentary"`
	History     []models.ChatMessage `json:"history"`
}
