// internal/readiness/ranking.go
package readiness

import (
	"sort"

	"accelerator-workers/internal/models"
)

type RankedStartup struct {
	StartupID              int64  `json:"startupId"`
	Name                   string `json:"name"`
	URATScore              int    `json:"uratScore"`
	TechnologyLevel        int    `json:"technologyLevel"`
	CommercializationLevel int    `json:"commercializationLevel"`
	Score                  int    `json:"score"`
}

// Rank scores each startup as its URAT total plus its calculator technology
// level and orders them best first. Ties keep ascending startup id.
func Rank(startups []models.Startup, uratAnswers, calculatorAnswers []models.QuestionAnswer) []RankedStartup {
	urat := byStartup(uratAnswers)
	calc := byStartup(calculatorAnswers)

	ranked := make([]RankedStartup, 0, len(startups))
	for _, s := range startups {
		report := BuildCalculatorReport(calc[s.ID])
		uratScore := sumScores(urat[s.ID])
		ranked = append(ranked, RankedStartup{
			StartupID:              s.ID,
			Name:                   s.Name,
			URATScore:              uratScore,
			TechnologyLevel:        report.TechnologyLevel,
			CommercializationLevel: report.CommercializationLevel,
			Score:                  uratScore + report.TechnologyLevel,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].StartupID < ranked[j].StartupID
	})
	return ranked
}

func byStartup(answers []models.QuestionAnswer) map[int64][]models.QuestionAnswer {
	grouped := make(map[int64][]models.QuestionAnswer)
	for _, a := range answers {
		grouped[a.StartupID] = append(grouped[a.StartupID], a)
	}
	return grouped
}
