// internal/workers/startup/qualification/models.go
package qualification

import "accelerator-workers/internal/models"

type Input struct {
	StartupID int64 `json:"startupId"`
	// Action is one of approve, waitlist or markComplete.
	Action    string `json:"action"`
	ManagerID int64  `json:"managerId,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Output struct {
	StartupID           int64                      `json:"startupId"`
	QualificationStatus models.QualificationStatus `json:"qualificationStatus"`
	Message             string                     `json:"message"`
	AssignedTemplates   []int64                    `json:"assignedTemplates,omitempty"`
	WaitlistMessageID   int64                      `json:"waitlistMessageId,omitempty"`
	NotificationStatus  string                     `json:"notificationStatus,omitempty"`
}
