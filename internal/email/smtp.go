package email

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"leadflow_backend/platform/config"
)

// SMTPSender implements the Sender interface using a direct SMTP
// connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

// NewSMTPSender creates a sender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:      cfg.SMTPHost(),
		port:      cfg.SMTPPort(),
		username:  cfg.SMTPUser(),
		password:  cfg.SMTPPassword(),
		fromEmail: cfg.EmailFrom(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendLeadEmail wraps the rendered body in the lead email layout and
// delivers it.
func (s *SMTPSender) SendLeadEmail(ctx context.Context, to, subject, htmlBody string) error {
	content, err := renderEmailTemplate("lead_email.html", leadEmailData{
		Subject: subject,
		Body:    template.HTML(htmlBody),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subject, content)
}

// SendFollowupReminder delivers a due-follow-up notice to a rep.
func (s *SMTPSender) SendFollowupReminder(ctx context.Context, to string, data FollowupReminderData) error {
	content, err := renderEmailTemplate("followup_reminder.html", followupReminderData{
		RepName:    data.RepName,
		LeadName:   data.LeadName,
		LeadEmail:  data.LeadEmail,
		Note:       data.Note,
		FollowupAt: data.FollowupAt,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, fmt.Sprintf("Follow-up due: %s", data.LeadName), content)
}
