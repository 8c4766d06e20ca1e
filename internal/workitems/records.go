// internal/workitems/records.go
package workitems

import (
	"encoding/json"
	"math"
	"strings"
)

// TaskRecord is one generated task. TargetLevel may arrive as a number, a
// numeric string or null.
type TaskRecord struct {
	TargetLevel json.Number `json:"target_level"`
	Description string      `json:"description"`
}

type InitiativeRecord struct {
	Description string `json:"description"`
	Measures    string `json:"measures"`
	Targets     string `json:"targets"`
	Remarks     string `json:"remarks"`
}

type RoadblockRecord struct {
	Description string      `json:"description"`
	Fix         string      `json:"fix"`
	RiskNumber  json.Number `json:"riskNumber"`
}

type RNARecord struct {
	ReadinessLevelType string `json:"readiness_level_type"`
	RNA                string `json:"rna"`
}

// numberOr returns n rounded to an int, or def when n is empty or not numeric.
func numberOr(n json.Number, def int) int {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return def
	}
	f, err := json.Number(s).Float64()
	if err != nil || math.IsNaN(f) {
		return def
	}
	return int(math.Round(f))
}

// resolveTargetLevel picks the record's target or currentLevel+1, capped at 9.
func resolveTargetLevel(rec TaskRecord, currentLevel int) int {
	target := numberOr(rec.TargetLevel, 0)
	if target <= 0 {
		target = currentLevel + 1
	}
	if target > 9 {
		target = 9
	}
	return target
}

// clampRisk keeps a roadblock severity within 1..5.
func clampRisk(n json.Number) int {
	risk := numberOr(n, 1)
	if risk < 1 {
		return 1
	}
	if risk > 5 {
		return 5
	}
	return risk
}
