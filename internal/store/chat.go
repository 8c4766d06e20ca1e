// internal/store/chat.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/models"
)

// ChatRepository persists refinement conversations, one row per turn.
type ChatRepository struct{}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// ListChatMessages returns the conversation about one item, oldest first.
func (r *ChatRepository) ListChatMessages(ctx context.Context, q database.DBTX, kind models.WorkItemKind, itemID int64) ([]models.ChatMessage, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, item_kind, item_id, role, content, refinements, created_at
		FROM work_item_chat_messages
		WHERE item_kind = $1 AND item_id = $2
		ORDER BY created_at, id`, kind, itemID)
	if err != nil {
		return nil, queryFailed("list chat messages", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var (
			m   models.ChatMessage
			raw []byte
		)
		if err := rows.Scan(&m.ID, &m.ItemKind, &m.ItemID, &m.Role, &m.Content, &raw, &m.CreatedAt); err != nil {
			return nil, queryFailed("scan chat message", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &m.Refinements); err != nil {
				return nil, queryFailed("decode chat refinements", fmt.Errorf("message %d: %w", m.ID, err))
			}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate chat messages", err)
	}
	return messages, nil
}

func (r *ChatRepository) InsertChatMessage(ctx context.Context, q database.DBTX, m *models.ChatMessage) (int64, error) {
	var refinements []byte
	if len(m.Refinements) > 0 {
		b, err := json.Marshal(m.Refinements)
		if err != nil {
			return 0, queryFailed("encode chat refinements", err)
		}
		refinements = b
	}

	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO work_item_chat_messages (item_kind, item_id, role, content, refinements, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`, m.ItemKind, m.ItemID, m.Role, m.Content, refinements, m.CreatedAt).Scan(&id)
	if err != nil {
		return 0, queryFailed("insert chat message", err)
	}
	return id, nil
}
