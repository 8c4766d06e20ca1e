// internal/workitems/generate_test.go
package workitems

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const startupID int64 = 1

type fixture struct {
	svc    *Service
	store  *fakeStore
	gen    *fakeGenerator
	locker *fakeLocker
	tx     *fakeTx
}

func newFixture(t *testing.T, respond func(prompt string) (string, error)) *fixture {
	catalog := testCatalog()
	st := &fakeStore{
		startups: map[int64]models.Startup{
			startupID: {ID: startupID, UserID: 70, Name: "Acme"},
			2:         {ID: 2, UserID: 80, Name: "NoProposal"},
		},
		proposals: map[int64]models.CapsuleProposal{
			startupID: {StartupID: startupID, Title: "Solar kiosks", Description: "Off-grid charging"},
		},
		catalog: catalog,
		nextID:  500,
	}
	for i, rt := range models.ReadinessTypes {
		st.levels = append(st.levels, models.StartupReadinessLevel{
			ID: int64(i + 1), StartupID: startupID, ReadinessLevel: catalogEntry(catalog, rt, 3),
		})
	}
	st.rnas = []models.StartupRNA{
		{ID: 11, StartupID: startupID, ReadinessLevel: catalogEntry(catalog, models.ReadinessTechnology, 3), RNA: "Prototype untested"},
		{ID: 12, StartupID: startupID, ReadinessLevel: catalogEntry(catalog, models.ReadinessMarket, 8), RNA: "Strong pull"},
		{ID: 13, StartupID: 99, ReadinessLevel: catalogEntry(catalog, models.ReadinessMarket, 2), RNA: "Other startup"},
	}

	f := &fixture{
		store:  st,
		gen:    &fakeGenerator{respond: respond},
		locker: &fakeLocker{held: map[string]bool{}},
		tx:     &fakeTx{},
	}
	f.svc = NewService(nil, f.tx, st, st, st, st, f.gen, f.locker, Config{MaxConcurrency: 2}, logger.NewTestLogger(t))
	return f
}

func existingTasks(keys ...int) []models.Task {
	tasks := make([]models.Task, len(keys))
	for i, k := range keys {
		tasks[i] = models.Task{
			ID: int64(100 + i), StartupID: startupID, PriorityNumber: k,
			ApprovalState: models.NewApprovalState(), Description: fmt.Sprintf("existing %d", k),
		}
	}
	return tasks
}

func staticResponse(body string) func(string) (string, error) {
	return func(string) (string, error) { return body, nil }
}

// ==========================
// Tasks
// ==========================

func TestGenerateBatch_Tasks_PrependsAndRenumbers(t *testing.T) {
	f := newFixture(t, staticResponse("Here you go:\n```json\n"+`[
		{"target_level": 4, "description": "Bench test"},
		{"target_level": "5", "description": "Field pilot"},
		{"target_level": null, "description": "Document results"}
	]`+"\n```"))
	f.store.tasks = existingTasks(1, 2)

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindTask, RequestedCount: 3, RNAIDs: []int64{11},
	})
	require.NoError(t, err)

	require.Len(t, result.Tasks, 3)
	assert.Equal(t, int64(2), result.Shifted)
	assert.Equal(t, 4, f.store.tasks[0].PriorityNumber)
	assert.Equal(t, 5, f.store.tasks[1].PriorityNumber)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, f.store.taskKeys())

	for i, task := range result.Tasks {
		assert.Equal(t, i+1, task.PriorityNumber)
		assert.Equal(t, models.NewApprovalState(), task.ApprovalState)
		assert.Equal(t, int64(70), task.AssigneeID)
		assert.False(t, task.IsAIGenerated)
		assert.Equal(t, models.ReadinessTechnology, task.ReadinessType)
	}
	assert.Equal(t, "Bench test", result.Tasks[0].Description)
	assert.Equal(t, 5, result.Tasks[1].TargetLevel)
	assert.Equal(t, 4, result.Tasks[2].TargetLevel, "null target falls back to current level + 1")
	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.tx.calls)
}

func TestGenerateBatch_Tasks_PreservesRNAOrder(t *testing.T) {
	f := newFixture(t, func(prompt string) (string, error) {
		if strings.Contains(prompt, "Strong pull") {
			return `[{"target_level": 12, "description": "market task"}]`, nil
		}
		return `[{"target_level": 4, "description": "tech task"}]`, nil
	})

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindTask, RequestedCount: 1, RNAIDs: []int64{11, 12, 13},
	})
	require.NoError(t, err)

	require.Len(t, result.Tasks, 2)
	assert.Len(t, f.gen.prompts, 2, "rna of another startup is not used")
	assert.Equal(t, "tech task", result.Tasks[0].Description)
	assert.Equal(t, "market task", result.Tasks[1].Description)
	assert.Equal(t, 9, result.Tasks[1].TargetLevel, "target is capped at 9")
}

func TestGenerateBatch_Tasks_SkipsUnknownCatalogLevel(t *testing.T) {
	f := newFixture(t, staticResponse(`[{"target_level": 4, "description": "a"}, {"target_level": 6, "description": "b"}]`))
	var trimmed []models.ReadinessLevel
	for _, l := range f.store.catalog {
		if !(l.ReadinessType == models.ReadinessTechnology && l.Level == 6) {
			trimmed = append(trimmed, l)
		}
	}
	f.store.catalog = trimmed

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindTask, RequestedCount: 2, RNAIDs: []int64{11},
	})
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "a", result.Tasks[0].Description)
}

func TestGenerateBatch_GeneratorFailureWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		respond func(string) (string, error)
	}{
		{name: "call fails", respond: func(string) (string, error) { return "", errors.New("upstream 529") }},
		{name: "empty text", respond: staticResponse("   ")},
		{name: "no brackets", respond: staticResponse("I cannot help with that")},
		{name: "schema violation", respond: staticResponse(`[{"target_level": 3}]`)},
		{name: "one of two prompts fails", respond: func(prompt string) (string, error) {
			if strings.Contains(prompt, "Strong pull") {
				return "not json", nil
			}
			return `[{"target_level": 4, "description": "ok"}]`, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.respond)
			f.store.tasks = existingTasks(1, 2)

			_, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
				StartupID: startupID, Kind: models.KindTask, RequestedCount: 1, RNAIDs: []int64{11, 12},
			})
			require.Error(t, err)
			assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeGenerationFailed))
			assert.Zero(t, f.store.writes)
			assert.Equal(t, []int{1, 2}, f.store.taskKeys())
			assert.Zero(t, f.locker.acquired)
		})
	}
}

func TestGenerateBatch_ZeroRecordsWritesNothing(t *testing.T) {
	f := newFixture(t, staticResponse("[]"))
	f.store.tasks = existingTasks(1)

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindTask, RequestedCount: 2, RNAIDs: []int64{11},
	})
	require.NoError(t, err)
	assert.Zero(t, result.Count())
	assert.Zero(t, f.store.writes)
	assert.Equal(t, 1, f.store.tasks[0].PriorityNumber)
}

func TestGenerateBatch_LockHeld(t *testing.T) {
	f := newFixture(t, staticResponse(`[{"target_level": 4, "description": "a"}]`))
	f.locker.held[lockKey(startupID, models.KindTask)] = true

	_, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindTask, RequestedCount: 1, RNAIDs: []int64{11},
	})
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeLockNotAcquired))
	assert.Zero(t, f.store.writes)
}

func TestGenerateBatch_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		req      BatchRequest
		wantCode commonerrors.ErrorCode
	}{
		{name: "unknown startup", req: BatchRequest{StartupID: 42, Kind: models.KindRoadblock, RequestedCount: 1}, wantCode: commonerrors.ErrCodeResourceNotFound},
		{name: "no capsule proposal", req: BatchRequest{StartupID: 2, Kind: models.KindRoadblock, RequestedCount: 1}, wantCode: commonerrors.ErrCodePreconditionFailed},
		{name: "rnas of another startup", req: BatchRequest{StartupID: startupID, Kind: models.KindTask, RequestedCount: 1, RNAIDs: []int64{13}}, wantCode: commonerrors.ErrCodePreconditionFailed},
		{name: "no rna ids", req: BatchRequest{StartupID: startupID, Kind: models.KindTask, RequestedCount: 1}, wantCode: commonerrors.ErrCodeValidationFailed},
		{name: "unknown tasks", req: BatchRequest{StartupID: startupID, Kind: models.KindInitiative, RequestedCount: 1, TaskIDs: []int64{9999}}, wantCode: commonerrors.ErrCodePreconditionFailed},
		{name: "zero count", req: BatchRequest{StartupID: startupID, Kind: models.KindTask, RequestedCount: 0, RNAIDs: []int64{11}}, wantCode: commonerrors.ErrCodeValidationFailed},
		{name: "bad kind", req: BatchRequest{StartupID: startupID, Kind: "milestone", RequestedCount: 1}, wantCode: commonerrors.ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, staticResponse("[]"))
			_, err := f.svc.GenerateBatch(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, commonerrors.HasCode(err, tt.wantCode), "got %v", err)
			assert.Empty(t, f.gen.prompts)
		})
	}
}

// ==========================
// Initiatives and roadblocks
// ==========================

func TestGenerateBatch_Initiatives(t *testing.T) {
	f := newFixture(t, func(prompt string) (string, error) {
		if strings.Contains(prompt, "existing 1") {
			return `[{"description": "i-1a", "measures": "m", "targets": "t", "remarks": "r"}]`, nil
		}
		return `[{"description": "i-2a"}, {"description": "i-2b"}]`, nil
	})
	f.store.tasks = existingTasks(1, 2)
	f.store.initiatives = []models.Initiative{
		{ID: 300, StartupID: startupID, TaskID: 100, InitiativeNumber: 1},
		{ID: 301, StartupID: 99, TaskID: 900, InitiativeNumber: 1},
	}

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindInitiative, RequestedCount: 2, TaskIDs: []int64{100, 101},
	})
	require.NoError(t, err)

	require.Len(t, result.Initiatives, 3)
	assert.Equal(t, int64(1), result.Shifted)
	assert.Equal(t, 4, f.store.initiatives[0].InitiativeNumber)
	assert.Equal(t, 1, f.store.initiatives[1].InitiativeNumber, "other startups are untouched")

	assert.Equal(t, int64(100), result.Initiatives[0].TaskID)
	assert.Equal(t, "m", result.Initiatives[0].Measures)
	assert.Equal(t, int64(101), result.Initiatives[2].TaskID)
	for i, in := range result.Initiatives {
		assert.Equal(t, i+1, in.InitiativeNumber)
		assert.Equal(t, int64(70), in.AssigneeID)
	}
}

func TestGenerateBatch_Roadblocks(t *testing.T) {
	f := newFixture(t, staticResponse(`[
		{"description": "Supplier risk", "fix": "Second source", "riskNumber": 9},
		{"description": "Permit delay", "fix": "Early filing", "riskNumber": "2"},
		{"description": "Churn", "fix": "Onboarding", "riskNumber": 0}
	]`))
	f.store.tasks = existingTasks(1, 2)
	f.store.tasks[1].Status = models.StatusDiscontinued
	f.store.roadblocks = []models.Roadblock{{ID: 400, StartupID: startupID, RiskNumber: 3}}

	result, err := f.svc.GenerateBatch(context.Background(), BatchRequest{
		StartupID: startupID, Kind: models.KindRoadblock, RequestedCount: 3,
	})
	require.NoError(t, err)

	require.Len(t, result.Roadblocks, 3)
	assert.Equal(t, []int{5, 2, 1}, []int{result.Roadblocks[0].RiskNumber, result.Roadblocks[1].RiskNumber, result.Roadblocks[2].RiskNumber})
	assert.Equal(t, 3, f.store.roadblocks[0].RiskNumber, "existing roadblocks keep their severity")
	assert.Zero(t, result.Shifted)

	require.Len(t, f.gen.prompts, 1)
	assert.Contains(t, f.gen.prompts[0], "existing 1")
	assert.NotContains(t, f.gen.prompts[0], "existing 2", "discontinued tasks are left out of the prompt")
	assert.Contains(t, f.gen.prompts[0], "exactly 3 roadblocks")
}
