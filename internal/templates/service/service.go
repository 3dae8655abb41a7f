// Package service implements email template management and sending
// rendered templates to leads.
package service

import (
	"context"

	"github.com/google/uuid"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	leadsrepo "leadflow_backend/internal/leads/repository"
	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/templates/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

// LeadDirectory is the slice of the leads module used to look up and
// access-check recipients.
type LeadDirectory interface {
	GetByID(ctx context.Context, actor leadssvc.Actor, id uuid.UUID) (leadsrepo.Lead, error)
}

type Service struct {
	repo   repository.Repository
	leads  LeadDirectory
	sender email.Sender
	bus    events.Bus
	log    *logger.Logger
}

func New(repo repository.Repository, leads LeadDirectory, sender email.Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, sender: sender, bus: bus, log: log}
}

func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, name, subject, body string) (repository.Template, error) {
	return s.repo.Create(ctx, name, subject, body, createdBy)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Template, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]repository.Template, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Template, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SendToLead renders the template with the lead's fields and delivers
// it to the lead's email address. Every attempt is recorded in the
// email log, failures included.
func (s *Service) SendToLead(ctx context.Context, actor leadssvc.Actor, leadID, templateID uuid.UUID) (repository.EmailLog, error) {
	lead, err := s.leads.GetByID(ctx, actor, leadID)
	if err != nil {
		return repository.EmailLog{}, err
	}
	if lead.Email == "" {
		return repository.EmailLog{}, apperr.Validation("lead has no email address")
	}

	tpl, err := s.repo.GetByID(ctx, templateID)
	if err != nil {
		return repository.EmailLog{}, err
	}

	subject := RenderForLead(tpl.Subject, lead)
	body := RenderForLead(tpl.Body, lead)

	sendErr := s.sender.SendLeadEmail(ctx, lead.Email, subject, body)

	status := repository.StatusSent
	if sendErr != nil {
		status = repository.StatusFailed
		s.log.Error("lead email delivery failed", "leadId", leadID, "error", sendErr)
	}

	entry, err := s.repo.CreateLog(ctx, repository.EmailLog{
		LeadID:     leadID,
		TemplateID: &tpl.ID,
		SentBy:     &actor.ID,
		Recipient:  lead.Email,
		Subject:    subject,
		Body:       body,
		Status:     status,
	})
	if err != nil {
		return repository.EmailLog{}, err
	}

	s.bus.Publish(ctx, events.LeadEmailSent{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     leadID,
		TemplateID: &tpl.ID,
		SentBy:     actor.ID,
		Recipient:  lead.Email,
		Subject:    subject,
		Success:    sendErr == nil,
	})

	if sendErr != nil {
		return entry, apperr.Internal("email delivery failed")
	}
	return entry, nil
}

// ListLogsByLead returns a lead's outbound mail history if the actor
// can see the lead.
func (s *Service) ListLogsByLead(ctx context.Context, actor leadssvc.Actor, leadID uuid.UUID) ([]repository.EmailLog, error) {
	if _, err := s.leads.GetByID(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListLogsByLead(ctx, leadID)
}
