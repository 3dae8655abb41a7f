package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/followups/repository"
	leadsrepo "leadflow_backend/internal/leads/repository"
	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/scheduler"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

// Overdue pending follow-ups get this much slack before the sweep
// marks them missed.
const missedGrace = time.Hour

// LeadDirectory is the slice of the leads module used for access checks.
type LeadDirectory interface {
	GetByID(ctx context.Context, actor leadssvc.Actor, id uuid.UUID) (leadsrepo.Lead, error)
}

type Service struct {
	repo      repository.Repository
	leads     LeadDirectory
	reminders scheduler.ReminderScheduler
	sender    email.Sender
	bus       events.Bus
	log       *logger.Logger
}

func New(repo repository.Repository, leads LeadDirectory, reminders scheduler.ReminderScheduler, sender email.Sender, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, reminders: reminders, sender: sender, bus: bus, log: log}
}

// Create schedules a follow-up on a lead the actor can access and
// queues a reminder for its due time. The follow-up lands on the lead's
// assigned rep, or on the actor when the lead is unassigned.
func (s *Service) Create(ctx context.Context, actor leadssvc.Actor, leadID uuid.UUID, followupAt time.Time, note string) (repository.Followup, error) {
	lead, err := s.leads.GetByID(ctx, actor, leadID)
	if err != nil {
		return repository.Followup{}, err
	}

	if followupAt.Before(time.Now()) {
		return repository.Followup{}, apperr.Validation("follow-up time must be in the future")
	}

	repID := lead.AssignedRepID
	if repID == nil {
		repID = &actor.ID
	}

	followup, err := s.repo.Create(ctx, leadID, repID, followupAt, note)
	if err != nil {
		return repository.Followup{}, err
	}

	s.bus.Publish(ctx, events.FollowupCreated{
		BaseEvent:     events.NewBaseEvent(),
		FollowupID:    followup.ID,
		LeadID:        leadID,
		AssignedRepID: repID,
		FollowupAt:    followupAt,
	})

	// A reminder that cannot be queued should not lose the follow-up
	// itself; the periodic sweep still catches it.
	if s.reminders != nil {
		err = s.reminders.ScheduleFollowupReminder(ctx, scheduler.FollowupReminderPayload{
			FollowupID: followup.ID.String(),
		}, followupAt)
		if err != nil {
			s.log.Error("schedule followup reminder failed", "followup_id", followup.ID.String(), "error", err.Error())
		}
	}

	return followup, nil
}

// ListByLead returns a lead's follow-ups if the actor can see the lead.
func (s *Service) ListByLead(ctx context.Context, actor leadssvc.Actor, leadID uuid.UUID) ([]repository.Followup, error) {
	if _, err := s.leads.GetByID(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return s.repo.ListByLead(ctx, leadID)
}

// ListMine returns the actor's unresolved follow-ups, soonest first.
// The due scope narrows to today's or overdue follow-ups.
func (s *Service) ListMine(ctx context.Context, actor leadssvc.Actor, due string) ([]repository.Followup, error) {
	switch due {
	case repository.DueAny, repository.DueToday, repository.DueOverdue:
	default:
		return nil, apperr.BadRequest("due must be today or overdue")
	}
	return s.repo.ListForRep(ctx, actor.ID, due)
}

// UpdateStatus resolves or reopens a follow-up. Only the assigned rep
// or an admin may do so.
func (s *Service) UpdateStatus(ctx context.Context, actor leadssvc.Actor, id uuid.UUID, status string) (repository.Followup, error) {
	followup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Followup{}, err
	}
	if err := s.checkAccess(actor, followup); err != nil {
		return repository.Followup{}, err
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a follow-up.
func (s *Service) Delete(ctx context.Context, actor leadssvc.Actor, id uuid.UUID) error {
	followup, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkAccess(actor, followup); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ProcessReminder emails the assigned rep if the follow-up is still
// pending when its due time arrives. Resolved follow-ups are a no-op.
func (s *Service) ProcessReminder(ctx context.Context, followupID uuid.UUID) error {
	info, err := s.repo.GetReminderInfo(ctx, followupID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if info.Followup.Status != repository.StatusPending || info.RepEmail == "" {
		return nil
	}

	return s.sender.SendFollowupReminder(ctx, info.RepEmail, email.FollowupReminderData{
		RepName:    info.RepName,
		LeadName:   info.Followup.LeadName,
		LeadEmail:  info.LeadEmail,
		Note:       info.Followup.Note,
		FollowupAt: info.Followup.FollowupAt.Format(time.RFC1123),
	})
}

// SweepOverdue marks pending follow-ups past their grace period missed.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	return s.repo.MarkOverdueMissed(ctx, time.Now().Add(-missedGrace))
}

func (s *Service) checkAccess(actor leadssvc.Actor, followup repository.Followup) error {
	if actor.Admin {
		return nil
	}
	if followup.AssignedRepID != nil && *followup.AssignedRepID == actor.ID {
		return nil
	}
	return apperr.Forbidden("follow-up is not assigned to you")
}
