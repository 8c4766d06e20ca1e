// internal/events/payloads.go
package events

import "accelerator-workers/internal/models"

type TemplateCreated struct {
	TemplateID     int64                 `json:"templateId"`
	AssessmentType models.AssessmentType `json:"assessmentType"`
}

type QualificationChanged struct {
	StartupID int64                      `json:"startupId"`
	From      models.QualificationStatus `json:"from"`
	To        models.QualificationStatus `json:"to"`
}
