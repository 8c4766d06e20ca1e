// internal/models/chat.go
package models

import "time"

type ChatRole string

const (
	ChatRoleUser ChatRole = "User"
	ChatRoleAI   ChatRole = "Ai"
)

// ChatMessage is one turn of a refinement conversation about a single item.
// Refinements is only set on AI turns and holds the proposed field values
// keyed by field name (refinedDescription, refinedFix, ...).
type ChatMessage struct {
	ID          int64             `json:"id"`
	ItemKind    WorkItemKind      `json:"itemKind"`
	ItemID      int64             `json:"itemId"`
	Role        ChatRole          `json:"role"`
	Content     string            `json:"content"`
	Refinements map[string]string `json:"refinements,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
