// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "generate-rnas", DisplayName: "Generate RNAs", Category: "workitems", TaskType: "generate-rnas"},
			{ID: "reconcile-assessments", DisplayName: "Reconcile Assessments", Category: "assessment", TaskType: "reconcile-assessments"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "activity-registry.json")
	require.NoError(t, Save(sampleRegistry(), path))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 2)

	a, ok := reg.Find("reconcile-assessments")
	require.True(t, ok)
	assert.Equal(t, "assessment", a.Category)

	_, ok = reg.Find("missing")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		wantErr string
	}{
		{name: "valid", mutate: func(*ActivityRegistry) {}},
		{
			name:    "empty",
			mutate:  func(r *ActivityRegistry) { r.Activities = nil },
			wantErr: "no activities",
		},
		{
			name:    "duplicate id",
			mutate:  func(r *ActivityRegistry) { r.Activities[1].ID = "generate-rnas" },
			wantErr: "duplicate activity ID",
		},
		{
			name:    "duplicate task type",
			mutate:  func(r *ActivityRegistry) { r.Activities[1].TaskType = "generate-rnas" },
			wantErr: "duplicate task type",
		},
		{
			name:    "missing category",
			mutate:  func(r *ActivityRegistry) { r.Activities[0].Category = "" },
			wantErr: "Category",
		},
		{
			name:    "unknown category",
			mutate:  func(r *ActivityRegistry) { r.Activities[0].Category = "crm" },
			wantErr: "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			tt.mutate(reg)
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUnregistered(t *testing.T) {
	got := sampleRegistry().Unregistered([]string{"reconcile-assessments", "rank-pending-startups", "generate-rnas", "apply-status-transition"})
	assert.Equal(t, []string{"apply-status-transition", "rank-pending-startups"}, got)
}
