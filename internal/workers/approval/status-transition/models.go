// internal/workers/approval/status-transition/models.go
package statustransition

import "accelerator-workers/internal/models"

type Input struct {
	Kind      models.WorkItemKind `json:"kind"`
	ItemID    int64               `json:"itemId"`
	ActorRole models.Role         `json:"actorRole"`
	NewStatus models.Status       `json:"newStatus"`
}

type Output struct {
	Kind    models.WorkItemKind `json:"kind"`
	ItemID  int64               `json:"itemId"`
	Outcome string              `json:"outcome"`
	// Item is the task, initiative or roadblock after the transition.
	Item            interface{}           `json:"item"`
	Status          models.Status         `json:"status"`
	RequestedStatus models.Status         `json:"requestedStatus"`
	ApprovalStatus  models.ApprovalStatus `json:"approvalStatus"`
}
