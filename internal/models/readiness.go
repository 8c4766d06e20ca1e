// internal/models/readiness.go
package models

// ReadinessType is one of the six readiness dimensions.
type ReadinessType string

const (
	ReadinessTechnology     ReadinessType = "Technology"
	ReadinessMarket         ReadinessType = "Market"
	ReadinessRegulatory     ReadinessType = "Regulatory"
	ReadinessAcceptance     ReadinessType = "Acceptance"
	ReadinessOrganizational ReadinessType = "Organizational"
	ReadinessInvestment     ReadinessType = "Investment"
)

// ReadinessTypes lists the dimensions in assignment order.
var ReadinessTypes = []ReadinessType{
	ReadinessTechnology,
	ReadinessMarket,
	ReadinessRegulatory,
	ReadinessAcceptance,
	ReadinessOrganizational,
	ReadinessInvestment,
}

func (t ReadinessType) Valid() bool {
	for _, rt := range ReadinessTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Abbreviation returns TRL, MRL, RRL, ARL, ORL or IRL.
func (t ReadinessType) Abbreviation() string {
	if t == "" {
		return ""
	}
	return string(t[0]) + "RL"
}

const (
	MinReadinessLevel = 1
	MaxReadinessLevel = 9
)

// ReadinessLevel is an immutable catalog entry.
type ReadinessLevel struct {
	ID            int64         `json:"id"`
	ReadinessType ReadinessType `json:"readinessType"`
	Level         int           `json:"level"`
	Name          string        `json:"name,omitempty"`
}

// StartupReadinessLevel assigns one catalog entry to a startup for one dimension.
type StartupReadinessLevel struct {
	ID             int64          `json:"id"`
	StartupID      int64          `json:"startupId"`
	ReadinessLevel ReadinessLevel `json:"readinessLevel"`
}

// QuestionAnswer is a scored answer. Category holds the readiness type for
// rubric answers and the calculator category for calculator answers.
type QuestionAnswer struct {
	ID         int64  `json:"id"`
	StartupID  int64  `json:"startupId"`
	QuestionID int64  `json:"questionId"`
	Category   string `json:"category"`
	Score      int    `json:"score"`
}

// StartupRNA is a readiness-and-needs narrative for one assigned level.
type StartupRNA struct {
	ID             int64          `json:"id"`
	StartupID      int64          `json:"startupId"`
	ReadinessLevel ReadinessLevel `json:"readinessLevel"`
	RNA            string         `json:"rna"`
	IsAIGenerated  bool           `json:"isAiGenerated"`
}
