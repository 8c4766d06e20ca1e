// internal/workitems/refine_test.go
package workitems

import (
	"context"
	"errors"
	"strings"
	"testing"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newRefineFixture(t *testing.T, respond func(prompt string) (string, error)) *fixture {
	f := newFixture(t, respond)
	f.store.tasks = existingTasks(1)
	f.store.tasks[0].ReadinessType = models.ReadinessTechnology
	f.store.tasks[0].TargetLevel = 4
	f.store.initiatives = []models.Initiative{{
		ApprovalState: models.NewApprovalState(), ID: 200, StartupID: startupID, TaskID: 100,
		InitiativeNumber: 1, Description: "Sign LOIs", Measures: "LOIs", Targets: "3",
	}}
	f.store.roadblocks = []models.Roadblock{
		{ApprovalState: models.NewApprovalState(), ID: 300, StartupID: startupID, RiskNumber: 4,
			Description: "Single supplier", Fix: "Find another"},
		{ApprovalState: models.NewApprovalState(), ID: 301, StartupID: 2, RiskNumber: 2,
			Description: "No proposal yet"},
	}
	return f
}

// ==========================
// Refine
// ==========================

func TestRefine_PersistsBothTurns(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.WorkItemKind
		itemID   int64
		reply    string
		want     map[string]string
		noun     string
		inPrompt string
	}{
		{
			name:     "task",
			kind:     models.KindTask,
			itemID:   100,
			reply:    "```json\n{\"refinedDescription\": \"Run a paid pilot with two utilities\"}\n```\n=========\nMade the pilot concrete.",
			want:     map[string]string{"refinedDescription": "Run a paid pilot with two utilities"},
			noun:     "Current task:",
			inPrompt: "Description: existing 1",
		},
		{
			name:     "initiative drops null fields",
			kind:     models.KindInitiative,
			itemID:   200,
			reply:    `{"refinedMeasures": "Signed LOIs from utilities", "refinedTargets": null, "refinedRemarks": "  "}` + "\n=========\nNarrowed the measure.",
			want:     map[string]string{"refinedMeasures": "Signed LOIs from utilities"},
			noun:     "Current initiative:",
			inPrompt: "Measures: LOIs",
		},
		{
			name:     "roadblock",
			kind:     models.KindRoadblock,
			itemID:   300,
			reply:    `{"refinedFix": "Qualify a second housing supplier"}` + "\n=========\nNamed the fix.",
			want:     map[string]string{"refinedFix": "Qualify a second housing supplier"},
			noun:     "Current roadblock:",
			inPrompt: "Risk Number: 4",
		},
		{
			name:     "rna",
			kind:     models.KindRNA,
			itemID:   11,
			reply:    `{"refinedRna": "Prototype has not run outside the lab"}` + "\n=========\nClarified.",
			want:     map[string]string{"refinedRna": "Prototype has not run outside the lab"},
			noun:     "Current RNA:",
			inPrompt: "Readiness Type: Technology",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRefineFixture(t, staticResponse(tt.reply))

			res, err := f.svc.Refine(context.Background(), RefineRequest{Kind: tt.kind, ItemID: tt.itemID, Prompt: " make it sharper "})
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Refinements)
			assert.Equal(t, startupID, res.StartupID)
			require.Len(t, res.History, 2)
			assert.Equal(t, models.ChatRoleUser, res.History[0].Role)
			assert.Equal(t, "make it sharper", res.History[0].Content)
			assert.Equal(t, models.ChatRoleAI, res.History[1].Role)
			assert.Equal(t, res.Commentary, res.History[1].Content)
			assert.Equal(t, tt.want, res.History[1].Refinements)
			assert.NotZero(t, res.History[1].ID)

			assert.Len(t, f.store.chats, 2)
			assert.Equal(t, 1, f.tx.calls)

			require.Len(t, f.gen.prompts, 1)
			prompt := f.gen.prompts[0]
			assert.Contains(t, prompt, "Solar kiosks")
			assert.Contains(t, prompt, tt.noun)
			assert.Contains(t, prompt, tt.inPrompt)
			assert.Contains(t, prompt, "User: make it sharper")
		})
	}
}

func TestRefine_ItemIsNotModified(t *testing.T) {
	f := newRefineFixture(t, staticResponse(`{"refinedDescription": "Entirely new"}`))

	_, err := f.svc.Refine(context.Background(), RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "rewrite"})
	require.NoError(t, err)
	assert.Equal(t, "existing 1", f.store.tasks[0].Description)
}

func TestRefine_CarriesEarlierTurns(t *testing.T) {
	f := newRefineFixture(t, staticResponse(`{"refinedFix": "Dual-source housings"}`+"\n=========\nShortened."))
	f.store.chats = []models.ChatMessage{
		{ID: 1, ItemKind: models.KindRoadblock, ItemID: 300, Role: models.ChatRoleUser, Content: "be specific"},
		{ID: 2, ItemKind: models.KindRoadblock, ItemID: 300, Role: models.ChatRoleAI, Content: "Named a supplier.",
			Refinements: map[string]string{"refinedFix": "Qualify Acme Plastics"}},
		{ID: 3, ItemKind: models.KindTask, ItemID: 300, Role: models.ChatRoleUser, Content: "other item"},
	}

	res, err := f.svc.Refine(context.Background(), RefineRequest{Kind: models.KindRoadblock, ItemID: 300, Prompt: "shorter"})
	require.NoError(t, err)

	require.Len(t, res.History, 4)
	assert.Equal(t, int64(1), res.History[0].ID)
	assert.Equal(t, "shorter", res.History[2].Content)
	assert.Equal(t, "Shortened.", res.History[3].Content)

	prompt := f.gen.prompts[0]
	assert.Contains(t, prompt, "User: be specific")
	assert.Contains(t, prompt, "Ai: Named a supplier.")
	assert.Contains(t, prompt, "refinedFix: Qualify Acme Plastics")
	assert.NotContains(t, prompt, "other item")
	assert.Less(t, strings.Index(prompt, "User: be specific"), strings.Index(prompt, "User: shorter"))
}

func TestRefine_DefaultCommentary(t *testing.T) {
	f := newRefineFixture(t, staticResponse(`{"refinedDescription": "Run a paid pilot"}`))

	res, err := f.svc.Refine(context.Background(), RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "tighten"})
	require.NoError(t, err)
	assert.Equal(t, defaultCommentary, res.Commentary)
}

func TestRefine_EmptyObjectStillRecordsTurns(t *testing.T) {
	f := newRefineFixture(t, staticResponse("{}\n=========\nNothing to change."))

	res, err := f.svc.Refine(context.Background(), RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "anything?"})
	require.NoError(t, err)
	assert.Empty(t, res.Refinements)
	assert.Len(t, f.store.chats, 2)
}

func TestRefine_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      RefineRequest
		reply    func(string) (string, error)
		wantCode commonerrors.ErrorCode
	}{
		{"unknown kind", RefineRequest{Kind: "milestone", ItemID: 100, Prompt: "x"}, nil, commonerrors.ErrCodeValidationFailed},
		{"missing id", RefineRequest{Kind: models.KindTask, Prompt: "x"}, nil, commonerrors.ErrCodeValidationFailed},
		{"blank prompt", RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "   "}, nil, commonerrors.ErrCodeValidationFailed},
		{"missing task", RefineRequest{Kind: models.KindTask, ItemID: 999, Prompt: "x"}, nil, commonerrors.ErrCodeResourceNotFound},
		{"missing rna", RefineRequest{Kind: models.KindRNA, ItemID: 999, Prompt: "x"}, nil, commonerrors.ErrCodeResourceNotFound},
		{"startup without proposal", RefineRequest{Kind: models.KindRoadblock, ItemID: 301, Prompt: "x"}, nil, commonerrors.ErrCodePreconditionFailed},
		{
			"generator down",
			RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "x"},
			func(string) (string, error) { return "", errors.New("quota exceeded") },
			commonerrors.ErrCodeGenerationFailed,
		},
		{
			"field foreign to the kind",
			RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "x"},
			staticResponse(`{"refinedFix": "not a task field"}`),
			commonerrors.ErrCodeGenerationFailed,
		},
		{
			"no JSON object",
			RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "x"},
			staticResponse("I cannot help with that."),
			commonerrors.ErrCodeGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			respond := tt.reply
			if respond == nil {
				respond = staticResponse(`{}`)
			}
			f := newRefineFixture(t, respond)

			_, err := f.svc.Refine(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, commonerrors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Empty(t, f.store.chats)
		})
	}
}

func TestRefine_InsertFailureIsReturned(t *testing.T) {
	f := newRefineFixture(t, staticResponse(`{"refinedDescription": "x"}`))
	f.store.chatErr = commonerrors.NewQueryExecutionFailedError("insert chat message", errors.New("conn reset"))

	_, err := f.svc.Refine(context.Background(), RefineRequest{Kind: models.KindTask, ItemID: 100, Prompt: "x"})
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeQueryExecutionFailed))
}
