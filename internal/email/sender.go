// Package email delivers outbound mail: template-based messages to
// leads and follow-up reminders to reps.
package email

import (
	"context"

	"leadflow_backend/platform/logger"
)

// FollowupReminderData fills the reminder template sent to a rep.
type FollowupReminderData struct {
	RepName    string
	LeadName   string
	LeadEmail  string
	Note       string
	FollowupAt string
}

// Sender delivers outbound mail.
type Sender interface {
	// SendLeadEmail sends an already-rendered message to a lead.
	SendLeadEmail(ctx context.Context, to, subject, htmlBody string) error
	// SendFollowupReminder notifies a rep about a due follow-up.
	SendFollowupReminder(ctx context.Context, to string, data FollowupReminderData) error
}

// NoopSender logs instead of sending. Used when SMTP is not configured
// so local development works without a mail server.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a sender that only logs.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendLeadEmail(_ context.Context, to, subject, _ string) error {
	s.log.Info("email skipped, smtp disabled", "to", to, "subject", subject)
	return nil
}

func (s *NoopSender) SendFollowupReminder(_ context.Context, to string, data FollowupReminderData) error {
	s.log.Info("followup reminder skipped, smtp disabled", "to", to, "lead", data.LeadName)
	return nil
}
