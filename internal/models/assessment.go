// internal/models/assessment.go
package models

// AssessmentType is the exclusivity slot of a template; one active assignment per type per startup.
type AssessmentType string

const (
	AssessmentTechnology     AssessmentType = "Technology"
	AssessmentAcceptance     AssessmentType = "Acceptance"
	AssessmentMarket         AssessmentType = "Market"
	AssessmentRegulatory     AssessmentType = "Regulatory"
	AssessmentOrganizational AssessmentType = "Organizational"
	AssessmentInvestment     AssessmentType = "Investment"
)

var AssessmentTypes = []AssessmentType{
	AssessmentTechnology,
	AssessmentAcceptance,
	AssessmentMarket,
	AssessmentRegulatory,
	AssessmentOrganizational,
	AssessmentInvestment,
}

func (t AssessmentType) Valid() bool {
	for _, at := range AssessmentTypes {
		if at == t {
			return true
		}
	}
	return false
}

type AnswerType int

const (
	AnswerShort AnswerType = 1
	AnswerLong  AnswerType = 2
	AnswerFile  AnswerType = 3
)

func (a AnswerType) Valid() bool {
	return a >= AnswerShort && a <= AnswerFile
}

type AssessmentStatus int

const (
	AssessmentPending   AssessmentStatus = 1
	AssessmentCompleted AssessmentStatus = 2
)

// AssessmentTemplate is shared reference data.
type AssessmentTemplate struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	AssessmentType AssessmentType `json:"assessmentType"`
	AnswerType     AnswerType     `json:"answerType"`
}

// StartupAssessment links a startup to a template.
type StartupAssessment struct {
	ID             int64            `json:"id"`
	StartupID      int64            `json:"startupId"`
	AssessmentID   int64            `json:"assessmentId"`
	AssessmentType AssessmentType   `json:"assessmentType"`
	Status         AssessmentStatus `json:"status"`
	IsApplicable   bool             `json:"isApplicable"`
}
