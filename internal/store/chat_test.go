// internal/store/chat_test.go
package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"accelerator-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chatColumns = []string{"id", "item_kind", "item_id", "role", "content", "refinements", "created_at"}

func TestChatRepository_ListChatMessages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChatRepository()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM work_item_chat_messages`).
		WithArgs(models.KindRoadblock, int64(31)).
		WillReturnRows(sqlmock.NewRows(chatColumns).
			AddRow(1, "roadblock", 31, "User", "Make the fix concrete", nil, at).
			AddRow(2, "roadblock", 31, "Ai", "Named a second supplier.", []byte(`{"refinedFix":"Qualify Acme as second supplier"}`), at))

	messages, err := repo.ListChatMessages(context.Background(), db, models.KindRoadblock, 31)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, models.ChatRoleUser, messages[0].Role)
	assert.Nil(t, messages[0].Refinements)
	assert.Equal(t, models.ChatRoleAI, messages[1].Role)
	assert.Equal(t, map[string]string{"refinedFix": "Qualify Acme as second supplier"}, messages[1].Refinements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepository_ListChatMessages_BadRefinements(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChatRepository()

	mock.ExpectQuery(`FROM work_item_chat_messages`).
		WillReturnRows(sqlmock.NewRows(chatColumns).
			AddRow(5, "task", 2, "Ai", "done", []byte(`not json`), time.Now()))

	_, err := repo.ListChatMessages(context.Background(), db, models.KindTask, 2)
	assert.Error(t, err)
}

func TestChatRepository_InsertChatMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		msg             *models.ChatMessage
		wantRefinements interface{}
	}{
		{
			name:            "user turn stores no refinements",
			msg:             &models.ChatMessage{ItemKind: models.KindTask, ItemID: 4, Role: models.ChatRoleUser, Content: "Shorter please", CreatedAt: at},
			wantRefinements: []byte(nil),
		},
		{
			name: "ai turn stores refinements as JSON",
			msg: &models.ChatMessage{ItemKind: models.KindTask, ItemID: 4, Role: models.ChatRoleAI, Content: "Trimmed.",
				Refinements: map[string]string{"refinedDescription": "Run a pilot"}, CreatedAt: at},
			wantRefinements: []byte(`{"refinedDescription":"Run a pilot"}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewChatRepository()

			mock.ExpectQuery(`INSERT INTO work_item_chat_messages`).
				WithArgs(tt.msg.ItemKind, tt.msg.ItemID, tt.msg.Role, tt.msg.Content, tt.wantRefinements, at).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))

			id, err := repo.InsertChatMessage(context.Background(), db, tt.msg)
			require.NoError(t, err)
			assert.Equal(t, int64(77), id)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadinessRepository_GetRNA(t *testing.T) {
	rnaColumns := []string{"id", "startup_id", "rna", "is_ai_generated", "id", "readiness_type", "level", "name"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM startup_rnas sr`).
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows(rnaColumns).
				AddRow(12, 9, "No paying pilots", true, 40, "Market", 3, "Market validation"))

		rna, err := NewReadinessRepository().GetRNA(context.Background(), db, 12)
		require.NoError(t, err)
		assert.Equal(t, int64(9), rna.StartupID)
		assert.Equal(t, models.ReadinessMarket, rna.ReadinessLevel.ReadinessType)
		assert.Equal(t, 3, rna.ReadinessLevel.Level)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM startup_rnas sr`).WillReturnError(sql.ErrNoRows)

		_, err := NewReadinessRepository().GetRNA(context.Background(), db, 12)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
