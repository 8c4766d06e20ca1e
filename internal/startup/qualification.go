// internal/startup/qualification.go
package startup

import (
	"context"
	"fmt"
	"strings"

	"accelerator-workers/internal/common/database"
	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/events"
	"accelerator-workers/internal/models"
)

const (
	ActionApprove      = "approve"
	ActionWaitlist     = "waitlist"
	ActionMarkComplete = "markComplete"
)

type QualificationResult struct {
	StartupID         int64                      `json:"startupId"`
	Status            models.QualificationStatus `json:"qualificationStatus"`
	Message           string                     `json:"message"`
	AssignedTemplates []int64                    `json:"assignedTemplates,omitempty"`
	WaitlistMessage   *models.WaitlistMessage    `json:"waitlistMessage,omitempty"`
	Notification      *models.Notification       `json:"notification,omitempty"`
}

// Approve qualifies the startup and assigns it every assessment template in
// the same transaction. The approval email goes out after commit.
func (s *Service) Approve(ctx context.Context, startupID int64) (*QualificationResult, error) {
	startup, err := s.requireStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}

	result := &QualificationResult{
		StartupID: startupID,
		Status:    models.QualificationQualified,
		Message:   fmt.Sprintf("Startup with ID %d has been approved.", startupID),
	}
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		if err := s.repo.UpdateQualificationStatus(ctx, q, startupID, models.QualificationQualified); err != nil {
			return err
		}
		assigned, err := s.templates.AssignAllWithin(ctx, q, startupID)
		if err != nil {
			return err
		}
		result.AssignedTemplates = assigned
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Notification = s.sendApprovalEmail(ctx, startup)
	s.announce(ctx, startup, models.QualificationQualified)
	return result, nil
}

// Waitlist moves the startup to the waitlist and stores the manager's note.
func (s *Service) Waitlist(ctx context.Context, startupID, managerID int64, message string) (*QualificationResult, error) {
	message = strings.TrimSpace(message)
	if managerID <= 0 {
		return nil, commonerrors.NewValidationFailedError("managerId is required", "")
	}
	if message == "" {
		return nil, commonerrors.NewValidationFailedError("message is required", "")
	}

	startup, err := s.requireStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}

	note := &models.WaitlistMessage{StartupID: startupID, ManagerID: managerID, Message: message}
	err = s.tx.WithTx(ctx, func(q database.DBTX) error {
		if err := s.repo.UpdateQualificationStatus(ctx, q, startupID, models.QualificationWaitlisted); err != nil {
			return err
		}
		id, err := s.repo.InsertWaitlistMessage(ctx, q, note)
		if err != nil {
			return err
		}
		note.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(ctx, startup, models.QualificationWaitlisted)
	return &QualificationResult{
		StartupID:       startupID,
		Status:          models.QualificationWaitlisted,
		Message:         fmt.Sprintf("Startup with ID %d has been waitlisted.", startupID),
		WaitlistMessage: note,
	}, nil
}

func (s *Service) MarkComplete(ctx context.Context, startupID int64) (*QualificationResult, error) {
	startup, err := s.requireStartup(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQualificationStatus(ctx, s.db, startupID, models.QualificationCompleted); err != nil {
		return nil, err
	}

	s.announce(ctx, startup, models.QualificationCompleted)
	return &QualificationResult{
		StartupID: startupID,
		Status:    models.QualificationCompleted,
		Message:   fmt.Sprintf("Startup with ID %d has been marked as completed.", startupID),
	}, nil
}

// UpdateQualification dispatches on action.
func (s *Service) UpdateQualification(ctx context.Context, startupID int64, action string, managerID int64, message string) (*QualificationResult, error) {
	switch action {
	case ActionApprove:
		return s.Approve(ctx, startupID)
	case ActionWaitlist:
		return s.Waitlist(ctx, startupID, managerID, message)
	case ActionMarkComplete:
		return s.MarkComplete(ctx, startupID)
	default:
		return nil, commonerrors.NewValidationFailedError("Invalid qualification action", action)
	}
}

func (s *Service) sendApprovalEmail(ctx context.Context, startup *models.Startup) *models.Notification {
	n := &models.Notification{
		StartupID: startup.ID,
		Channel:   "email",
		Recipient: startup.UserEmail,
		Subject:   fmt.Sprintf("%s has been approved", startup.Name),
	}
	switch {
	case s.mailer == nil:
		n.Status = models.NotificationDisabled
		return n
	case startup.UserEmail == "":
		n.Status = models.NotificationSkipped
		return n
	}

	body := fmt.Sprintf("Congratulations! %s has been approved for %s.\n\n"+
		"Your readiness assessments are now available in your dashboard.", startup.Name, s.config.ProgramName)
	if err := s.mailer.SendText(ctx, startup.UserEmail, n.Subject, body); err != nil {
		s.logger.Warn("approval email failed", map[string]interface{}{
			"startupId": startup.ID,
			"error":     commonerrors.NewNotificationSendFailedError("email", err).Details,
		})
		n.Status = models.NotificationFailed
		return n
	}
	n.Status = models.NotificationSent
	return n
}

// announce publishes the status change. The write is already committed, so a
// failure is only logged.
func (s *Service) announce(ctx context.Context, startup *models.Startup, to models.QualificationStatus) {
	_, err := s.publisher.Publish(ctx, events.TypeQualificationChanged, events.QualificationChanged{
		StartupID: startup.ID,
		From:      startup.QualificationStatus,
		To:        to,
	})
	if err != nil {
		s.logger.WithError(err).Error("qualification event failed", map[string]interface{}{
			"startupId": startup.ID,
		})
		return
	}
	s.logger.Info("qualification status changed", map[string]interface{}{
		"startupId": startup.ID,
		"from":      startup.QualificationStatus.String(),
		"to":        to.String(),
	})
}
