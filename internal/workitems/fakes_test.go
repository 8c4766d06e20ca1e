// internal/workitems/fakes_test.go
package workitems

import (
	"context"
	"sort"
	"sync"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/models"
	"accelerator-workers/internal/store"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(_ context.Context, fn func(q database.DBTX) error) error {
	f.calls++
	return fn(nil)
}

type fakeGenerator struct {
	mu      sync.Mutex
	respond func(prompt string) (string, error)
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.respond(prompt)
}

type fakeLocker struct {
	held     map[string]bool
	acquired int
}

func (l *fakeLocker) Acquire(_ context.Context, startupID int64, kind models.WorkItemKind) (func(), error) {
	key := lockKey(startupID, kind)
	if l.held[key] {
		return nil, commonerrors.NewLockNotAcquiredError(key)
	}
	l.acquired++
	return func() {}, nil
}

// fakeStore keeps startups, readiness data and work items in memory.
type fakeStore struct {
	startups    map[int64]models.Startup
	proposals   map[int64]models.CapsuleProposal
	catalog     []models.ReadinessLevel
	levels      []models.StartupReadinessLevel
	rnas        []models.StartupRNA
	tasks       []models.Task
	initiatives []models.Initiative
	roadblocks  []models.Roadblock
	chats       []models.ChatMessage
	chatErr     error
	nextID      int64
	writes      int
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetStartup(_ context.Context, _ database.DBTX, id int64) (*models.Startup, error) {
	s, ok := f.startups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStore) GetCapsuleProposal(_ context.Context, _ database.DBTX, startupID int64) (*models.CapsuleProposal, error) {
	p, ok := f.proposals[startupID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListStartupLevels(_ context.Context, _ database.DBTX, startupID int64) ([]models.StartupReadinessLevel, error) {
	var out []models.StartupReadinessLevel
	for _, l := range f.levels {
		if l.StartupID == startupID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FindCatalogEntry(_ context.Context, _ database.DBTX, rt models.ReadinessType, level int) (*models.ReadinessLevel, error) {
	for _, l := range f.catalog {
		if l.ReadinessType == rt && l.Level == level {
			return &l, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListRNAs(_ context.Context, _ database.DBTX, startupID int64) ([]models.StartupRNA, error) {
	var out []models.StartupRNA
	for _, r := range f.rnas {
		if r.StartupID == startupID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRNAsByIDs(_ context.Context, _ database.DBTX, startupID int64, ids []int64) ([]models.StartupRNA, error) {
	var out []models.StartupRNA
	for _, r := range f.rnas {
		if r.StartupID == startupID && contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertRNA(_ context.Context, _ database.DBTX, rna *models.StartupRNA) (int64, error) {
	f.writes++
	rna.ID = f.id()
	f.rnas = append(f.rnas, *rna)
	return rna.ID, nil
}

func (f *fakeStore) ListTasksByIDs(_ context.Context, _ database.DBTX, startupID int64, ids []int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.StartupID == startupID && contains(ids, t.ID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOpenTasks(_ context.Context, _ database.DBTX, startupID int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.StartupID == startupID && t.Status != models.StatusCompleted && t.Status != models.StatusDiscontinued {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOpenInitiatives(_ context.Context, _ database.DBTX, startupID int64) ([]models.Initiative, error) {
	var out []models.Initiative
	for _, i := range f.initiatives {
		if i.StartupID == startupID && i.Status != models.StatusCompleted && i.Status != models.StatusDiscontinued {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeStore) ShiftTaskPriorities(_ context.Context, _ database.DBTX, startupID int64, n int) (int64, error) {
	f.writes++
	var shifted int64
	for i := range f.tasks {
		if f.tasks[i].StartupID == startupID {
			f.tasks[i].PriorityNumber += n
			shifted++
		}
	}
	return shifted, nil
}

func (f *fakeStore) ShiftInitiativeNumbers(_ context.Context, _ database.DBTX, startupID int64, n int) (int64, error) {
	f.writes++
	var shifted int64
	for i := range f.initiatives {
		if f.initiatives[i].StartupID == startupID {
			f.initiatives[i].InitiativeNumber += n
			shifted++
		}
	}
	return shifted, nil
}

func (f *fakeStore) InsertTask(_ context.Context, _ database.DBTX, t *models.Task) (int64, error) {
	f.writes++
	t.ID = f.id()
	f.tasks = append(f.tasks, *t)
	return t.ID, nil
}

func (f *fakeStore) InsertInitiative(_ context.Context, _ database.DBTX, i *models.Initiative) (int64, error) {
	f.writes++
	i.ID = f.id()
	f.initiatives = append(f.initiatives, *i)
	return i.ID, nil
}

func (f *fakeStore) InsertRoadblock(_ context.Context, _ database.DBTX, rb *models.Roadblock) (int64, error) {
	f.writes++
	rb.ID = f.id()
	f.roadblocks = append(f.roadblocks, *rb)
	return rb.ID, nil
}

func (f *fakeStore) GetRNA(_ context.Context, _ database.DBTX, id int64) (*models.StartupRNA, error) {
	for _, r := range f.rnas {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetWorkItem(_ context.Context, _ database.DBTX, kind models.WorkItemKind, id int64) (models.Approvable, error) {
	switch kind {
	case models.KindTask:
		for _, t := range f.tasks {
			if t.ID == id {
				return &t, nil
			}
		}
	case models.KindInitiative:
		for _, i := range f.initiatives {
			if i.ID == id {
				return &i, nil
			}
		}
	case models.KindRoadblock:
		for _, rb := range f.roadblocks {
			if rb.ID == id {
				return &rb, nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListChatMessages(_ context.Context, _ database.DBTX, kind models.WorkItemKind, itemID int64) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.chats {
		if m.ItemKind == kind && m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertChatMessage(_ context.Context, _ database.DBTX, m *models.ChatMessage) (int64, error) {
	if f.chatErr != nil {
		return 0, f.chatErr
	}
	f.writes++
	m.ID = f.id()
	f.chats = append(f.chats, *m)
	return m.ID, nil
}

func (f *fakeStore) taskKeys() []int {
	keys := make([]int, 0, len(f.tasks))
	for _, t := range f.tasks {
		keys = append(keys, t.PriorityNumber)
	}
	sort.Ints(keys)
	return keys
}

func contains(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func testCatalog() []models.ReadinessLevel {
	var all []models.ReadinessLevel
	id := int64(1000)
	for _, rt := range models.ReadinessTypes {
		for l := 1; l <= 9; l++ {
			id++
			all = append(all, models.ReadinessLevel{ID: id, ReadinessType: rt, Level: l})
		}
	}
	return all
}

func catalogEntry(catalog []models.ReadinessLevel, rt models.ReadinessType, level int) models.ReadinessLevel {
	for _, l := range catalog {
		if l.ReadinessType == rt && l.Level == level {
			return l
		}
	}
	panic("missing catalog entry")
}
