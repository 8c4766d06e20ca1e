// internal/readiness/calculator.go
package readiness

import (
	"strings"

	"accelerator-workers/internal/models"
)

// Calculator categories, matched case-insensitively.
const (
	CategoryTechnology         = "technology"
	CategoryProductDevelopment = "product development"
	CategoryProductDefinition  = "product definition/design"
	CategoryCompetitive        = "competitive landscape"
	CategoryTeam               = "team"
	CategoryGoToMarket         = "go-to-market"
	CategorySupplyChain        = "manufacturing/supply chain"
)

type CalculatorScores struct {
	Technology           int `json:"technology"`
	ProductDevelopment   int `json:"productDevelopment"`
	ProductDefinition    int `json:"productDefinition"`
	CompetitiveLandscape int `json:"competitiveLandscape"`
	Team                 int `json:"team"`
	GoToMarket           int `json:"goToMarket"`
	SupplyChain          int `json:"supplyChain"`
}

type CalculatorReport struct {
	Scores                 CalculatorScores `json:"scores"`
	TechnologyLevel        int              `json:"technologyLevel"`
	CommercializationLevel int              `json:"commercializationLevel"`
}

// SumCalculatorScores folds calculator answers into the seven category sums.
// Answers in other categories are ignored.
func SumCalculatorScores(answers []models.QuestionAnswer) CalculatorScores {
	var s CalculatorScores
	for _, a := range answers {
		switch strings.ToLower(strings.TrimSpace(a.Category)) {
		case CategoryTechnology:
			s.Technology += a.Score
		case CategoryProductDevelopment:
			s.ProductDevelopment += a.Score
		case CategoryProductDefinition:
			s.ProductDefinition += a.Score
		case CategoryCompetitive:
			s.CompetitiveLandscape += a.Score
		case CategoryTeam:
			s.Team += a.Score
		case CategoryGoToMarket:
			s.GoToMarket += a.Score
		case CategorySupplyChain:
			s.SupplyChain += a.Score
		}
	}
	return s
}

func BuildCalculatorReport(answers []models.QuestionAnswer) CalculatorReport {
	scores := SumCalculatorScores(answers)
	return CalculatorReport{
		Scores:                 scores,
		TechnologyLevel:        TechnologyLevel(scores),
		CommercializationLevel: CommercializationLevel(scores),
	}
}

type levelRule struct {
	level   int
	matches func(s CalculatorScores) bool
}

// Rules are evaluated in order and the last match wins.
var technologyRules = []levelRule{
	{4, func(s CalculatorScores) bool { return s.Technology >= 4 }},
	{5, func(s CalculatorScores) bool { return s.Technology >= 5 }},
	{6, func(s CalculatorScores) bool { return s.ProductDevelopment >= 2 && s.ProductDefinition >= 3 }},
	{7, func(s CalculatorScores) bool { return s.ProductDevelopment >= 3 }},
	{8, func(s CalculatorScores) bool { return s.ProductDevelopment >= 4 }},
	{9, func(s CalculatorScores) bool { return s.ProductDevelopment >= 5 }},
}

var commercializationRules = []levelRule{
	{1, func(s CalculatorScores) bool { return s.CompetitiveLandscape >= 1 && s.Team >= 1 }},
	{2, func(s CalculatorScores) bool { return s.CompetitiveLandscape >= 2 && s.Team == 2 }},
	{3, func(s CalculatorScores) bool {
		return s.ProductDevelopment >= 1 && s.ProductDefinition >= 1 && s.CompetitiveLandscape >= 3 &&
			s.Team >= 2 && s.GoToMarket >= 1
	}},
	{4, func(s CalculatorScores) bool {
		return s.ProductDefinition >= 2 && s.CompetitiveLandscape >= 4 && s.Team >= 2 &&
			s.GoToMarket >= 2 && s.SupplyChain >= 1
	}},
	{5, func(s CalculatorScores) bool {
		return s.ProductDefinition >= 4 && s.CompetitiveLandscape >= 5 && s.Team >= 3 &&
			s.GoToMarket >= 3 && s.SupplyChain >= 2
	}},
	{6, func(s CalculatorScores) bool { return s.ProductDefinition >= 5 && s.Team >= 4 && s.GoToMarket >= 4 }},
	{7, func(s CalculatorScores) bool { return s.Team >= 4 && s.SupplyChain >= 3 }},
	{8, func(s CalculatorScores) bool { return s.Team >= 5 && s.SupplyChain >= 4 }},
	{9, func(s CalculatorScores) bool { return s.Team >= 5 && s.SupplyChain >= 5 }},
}

func applyRules(rules []levelRule, s CalculatorScores) int {
	level := 1
	for _, r := range rules {
		if r.matches(s) {
			level = r.level
		}
	}
	return level
}

func TechnologyLevel(s CalculatorScores) int {
	return applyRules(technologyRules, s)
}

func CommercializationLevel(s CalculatorScores) int {
	return applyRules(commercializationRules, s)
}
