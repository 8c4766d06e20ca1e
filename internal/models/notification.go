// internal/models/notification.go
package models

const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
	NotificationSkipped  = "skipped"
)

// Notification records one outbound message sent on behalf of a startup event.
type Notification struct {
	StartupID int64  `json:"startupId"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient,omitempty"`
	Subject   string `json:"subject"`
	Status    string `json:"status"`
}
