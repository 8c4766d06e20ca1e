// internal/readiness/calculator_test.go
package readiness

import (
	"testing"

	"accelerator-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSumCalculatorScores_CaseInsensitive(t *testing.T) {
	scores := SumCalculatorScores([]models.QuestionAnswer{
		{Category: "Technology", Score: 2},
		{Category: "TECHNOLOGY", Score: 3},
		{Category: "Product Definition/Design", Score: 1},
		{Category: "Go-To-Market", Score: 2},
		{Category: "Manufacturing/Supply Chain", Score: 4},
		{Category: "Unrelated", Score: 9},
	})

	assert.Equal(t, 5, scores.Technology)
	assert.Equal(t, 1, scores.ProductDefinition)
	assert.Equal(t, 2, scores.GoToMarket)
	assert.Equal(t, 4, scores.SupplyChain)
}

func TestTechnologyLevel(t *testing.T) {
	tests := []struct {
		name   string
		scores CalculatorScores
		want   int
	}{
		{name: "no answers", scores: CalculatorScores{}, want: 1},
		{name: "tech below floor", scores: CalculatorScores{Technology: 3}, want: 1},
		{name: "tech 4", scores: CalculatorScores{Technology: 4}, want: 4},
		{name: "tech 5", scores: CalculatorScores{Technology: 5}, want: 5},
		{name: "development and definition", scores: CalculatorScores{ProductDevelopment: 2, ProductDefinition: 3}, want: 6},
		{name: "development 2 without definition", scores: CalculatorScores{Technology: 5, ProductDevelopment: 2}, want: 5},
		{name: "development 3", scores: CalculatorScores{ProductDevelopment: 3}, want: 7},
		{name: "development 4", scores: CalculatorScores{ProductDevelopment: 4}, want: 8},
		{name: "development 5 overrides everything", scores: CalculatorScores{Technology: 9, ProductDevelopment: 5}, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TechnologyLevel(tt.scores))
		})
	}
}

func TestCommercializationLevel(t *testing.T) {
	tests := []struct {
		name   string
		scores CalculatorScores
		want   int
	}{
		{name: "no answers", scores: CalculatorScores{}, want: 1},
		{name: "tier 2 needs team exactly 2", scores: CalculatorScores{CompetitiveLandscape: 2, Team: 2}, want: 2},
		{name: "team 3 misses tier 2", scores: CalculatorScores{CompetitiveLandscape: 2, Team: 3}, want: 1},
		{
			name:   "tier 3",
			scores: CalculatorScores{ProductDevelopment: 1, ProductDefinition: 1, CompetitiveLandscape: 3, Team: 2, GoToMarket: 1},
			want:   3,
		},
		{
			name:   "tier 4",
			scores: CalculatorScores{ProductDefinition: 2, CompetitiveLandscape: 4, Team: 2, GoToMarket: 2, SupplyChain: 1},
			want:   4,
		},
		{
			name:   "tier 5",
			scores: CalculatorScores{ProductDefinition: 4, CompetitiveLandscape: 5, Team: 3, GoToMarket: 3, SupplyChain: 2},
			want:   5,
		},
		{name: "tier 6", scores: CalculatorScores{ProductDefinition: 5, Team: 4, GoToMarket: 4}, want: 6},
		{name: "tier 7", scores: CalculatorScores{Team: 4, SupplyChain: 3}, want: 7},
		{name: "tier 8", scores: CalculatorScores{Team: 5, SupplyChain: 4}, want: 8},
		{name: "tier 9", scores: CalculatorScores{Team: 5, SupplyChain: 5}, want: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommercializationLevel(tt.scores))
		})
	}
}

func TestRank(t *testing.T) {
	startups := []models.Startup{
		{ID: 3, Name: "Gamma"},
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
	}
	urat := []models.QuestionAnswer{
		{StartupID: 1, Category: "Technology", Score: 10},
		{StartupID: 2, Category: "Market", Score: 6},
		{StartupID: 2, Category: "Technology", Score: 4},
		{StartupID: 3, Category: "Market", Score: 3},
	}
	calc := []models.QuestionAnswer{
		{StartupID: 3, Category: "product development", Score: 5},
	}

	ranked := Rank(startups, urat, calc)

	assert.Len(t, ranked, 3)
	// Gamma: 3 + 9; Alpha and Beta tie at 10 + 1 and keep id order.
	assert.Equal(t, []int64{3, 1, 2}, []int64{ranked[0].StartupID, ranked[1].StartupID, ranked[2].StartupID})
	assert.Equal(t, 12, ranked[0].Score)
	assert.Equal(t, 9, ranked[0].TechnologyLevel)
	assert.Equal(t, 11, ranked[1].Score)
}
