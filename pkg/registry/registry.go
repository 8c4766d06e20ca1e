// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry as indented JSON, creating the directory if needed.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity with the given id.
func (r *ActivityRegistry) Find(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks required fields, duplicate ids and duplicate task types.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if !IsKnownCategory(a.Category) {
			return fmt.Errorf("activity %s has unknown category %q", a.ID, a.Category)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		taskTypes[a.TaskType] = true
	}
	return nil
}

// Unregistered returns the task types with no matching activity, sorted.
func (r *ActivityRegistry) Unregistered(taskTypes []string) []string {
	known := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		known[a.TaskType] = true
	}

	var missing []string
	for _, tt := range taskTypes {
		if !known[tt] {
			missing = append(missing, tt)
		}
	}
	sort.Strings(missing)
	return missing
}
