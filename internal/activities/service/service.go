package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"leadflow_backend/internal/activities/repository"
	"leadflow_backend/internal/events"
	leadsrepo "leadflow_backend/internal/leads/repository"
	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/sanitize"
)

// LeadDirectory is the slice of the leads module used for access checks.
type LeadDirectory interface {
	GetByID(ctx context.Context, actor leadssvc.Actor, id uuid.UUID) (leadsrepo.Lead, error)
}

type Service struct {
	repo  repository.Repository
	leads LeadDirectory
	log   *logger.Logger
}

func New(repo repository.Repository, leads LeadDirectory, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, log: log}
}

// Log records a manual timeline entry on a lead the actor can access.
func (s *Service) Log(ctx context.Context, actor leadssvc.Actor, leadID uuid.UUID, activityType, description string) (repository.Activity, error) {
	if _, err := s.leads.GetByID(ctx, actor, leadID); err != nil {
		return repository.Activity{}, err
	}

	return s.repo.Create(ctx, leadID, &actor.ID, activityType, sanitize.StripHTML(description))
}

// ListByLead returns a lead's timeline if the actor can see the lead.
func (s *Service) ListByLead(ctx context.Context, actor leadssvc.Actor, leadID uuid.UUID) ([]repository.Activity, error) {
	if _, err := s.leads.GetByID(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListByLead(ctx, leadID)
}

// HandleEvent writes system timeline entries for lead lifecycle events.
func (s *Service) HandleEvent(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		desc := "Lead created"
		if e.Imported {
			desc = "Lead imported from CSV"
		}
		_, err := s.repo.Create(ctx, e.LeadID, e.CreatedBy, repository.TypeSystem, desc)
		return err
	case events.LeadStageChanged:
		from := e.FromStage
		if from == "" {
			from = "unstaged"
		}
		desc := fmt.Sprintf("Stage changed from %s to %s", from, e.ToStage)
		changedBy := e.ChangedBy
		_, err := s.repo.Create(ctx, e.LeadID, &changedBy, repository.TypeSystem, desc)
		return err
	case events.LeadAssigned:
		assignedBy := e.AssignedBy
		desc := fmt.Sprintf("Lead assigned to rep %s", e.RepID.String())
		_, err := s.repo.Create(ctx, e.LeadID, &assignedBy, repository.TypeSystem, desc)
		return err
	case events.LeadEmailSent:
		sentBy := e.SentBy
		desc := fmt.Sprintf("Email sent to %s: %s", e.Recipient, e.Subject)
		if !e.Success {
			desc = fmt.Sprintf("Email to %s failed: %s", e.Recipient, e.Subject)
		}
		_, err := s.repo.Create(ctx, e.LeadID, &sentBy, repository.TypeEmail, desc)
		return err
	default:
		return nil
	}
}
