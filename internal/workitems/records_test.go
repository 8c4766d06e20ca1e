// internal/workitems/records_test.go
package workitems

import (
	"encoding/json"
	"strings"
	"testing"

	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveTargetLevel(t *testing.T) {
	tests := []struct {
		raw     json.Number
		current int
		want    int
	}{
		{raw: "6", current: 3, want: 6},
		{raw: "", current: 3, want: 4},
		{raw: "0", current: 8, want: 9},
		{raw: "15", current: 2, want: 9},
		{raw: "4.6", current: 1, want: 5},
		{raw: "", current: 9, want: 9},
	}

	for _, tt := range tests {
		got := resolveTargetLevel(TaskRecord{TargetLevel: tt.raw}, tt.current)
		assert.Equal(t, tt.want, got, "raw=%q current=%d", tt.raw, tt.current)
	}
}

func TestClampRisk(t *testing.T) {
	assert.Equal(t, 1, clampRisk(""))
	assert.Equal(t, 1, clampRisk("-3"))
	assert.Equal(t, 3, clampRisk("3"))
	assert.Equal(t, 5, clampRisk("42"))
}

func TestBaseContextPrompt(t *testing.T) {
	levels := []models.StartupReadinessLevel{
		{ReadinessLevel: models.ReadinessLevel{ReadinessType: models.ReadinessTechnology, Level: 4}},
		{ReadinessLevel: models.ReadinessLevel{ReadinessType: models.ReadinessInvestment, Level: 2}},
	}
	base := NewBaseContext(models.CapsuleProposal{Title: "Solar kiosks", Methodology: "Pilot in two towns"}, levels)

	prompt, err := RNAPrompt(base, []models.ReadinessType{models.ReadinessMarket})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Given these data:"))
	assert.Contains(t, prompt, "Acceleration Proposal Title: Solar kiosks")
	assert.Contains(t, prompt, "Duration: 3 months")
	assert.Contains(t, prompt, "Pilot in two towns")
	assert.Contains(t, prompt, "TRL 4")
	assert.Contains(t, prompt, "IRL 2")
	assert.Contains(t, prompt, "MRL 0")
	assert.Contains(t, prompt, "must be one of: Market")
}
