// internal/workers/assessment/create-template/models.go
package createtemplate

import "accelerator-workers/internal/models"

type Input struct {
	Name           string                `json:"name"`
	AssessmentType models.AssessmentType `json:"assessmentType"`
	AnswerType     models.AnswerType     `json:"answerType"`
}

type Output struct {
	Template models.AssessmentTemplate `json:"template"`
	EventID  string                    `json:"eventId"`
	Existing bool                      `json:"existing"`
}
