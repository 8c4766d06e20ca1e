// internal/readiness/normalizer.go
package readiness

import (
	"math"
	"sort"

	"accelerator-workers/internal/models"
)

const (
	// AnswersPerDimension is the divisor applied to a raw dimension sum.
	AnswersPerDimension = 3

	// FallbackLevelIndex is the position in the level-sorted catalog used
	// when the scaled value matches no entry.
	FallbackLevelIndex = 5
)

// Normalize maps a raw dimension sum onto the 1..9 level scale. The result
// can fall outside 1..9; SelectLevel handles that through the fallback.
func Normalize(rawScore int) int {
	normalized := math.Ceil(float64(rawScore) / AnswersPerDimension)
	scaled := math.Ceil(((normalized-1)*8)/4 + 1)
	return int(scaled)
}

// Selection is the catalog entry chosen for one dimension.
type Selection struct {
	Level    models.ReadinessLevel
	Scaled   int
	Fallback bool
}

// SelectLevel picks the entry whose level equals scaled, or the entry at
// FallbackLevelIndex when none does. ok is false when the catalog is too
// short to hold a fallback.
func SelectLevel(scaled int, entries []models.ReadinessLevel) (Selection, bool) {
	for _, e := range entries {
		if e.Level == scaled {
			return Selection{Level: e, Scaled: scaled}, true
		}
	}
	return fallbackLevel(scaled, entries)
}

func fallbackLevel(scaled int, entries []models.ReadinessLevel) (Selection, bool) {
	if len(entries) <= FallbackLevelIndex {
		return Selection{Scaled: scaled, Fallback: true}, false
	}
	sorted := make([]models.ReadinessLevel, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	return Selection{Level: sorted[FallbackLevelIndex], Scaled: scaled, Fallback: true}, true
}

// groupCatalog indexes catalog entries by readiness type.
func groupCatalog(entries []models.ReadinessLevel) map[models.ReadinessType][]models.ReadinessLevel {
	grouped := make(map[models.ReadinessType][]models.ReadinessLevel)
	for _, e := range entries {
		grouped[e.ReadinessType] = append(grouped[e.ReadinessType], e)
	}
	return grouped
}
