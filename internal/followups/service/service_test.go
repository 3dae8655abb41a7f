package service

import (
	"context"
	"testing"
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

type fakeRepo struct {
	created    []repository.Followup
	reminder   repository.ReminderInfo
	reminderOK bool
	swept      int
	sweptAt    time.Time
}

func (f *fakeRepo) Create(_ context.Context, leadID uuid.UUID, repID *uuid.UUID, followupAt time.Time, note string) (repository.Followup, error) {
	fu := repository.Followup{
		ID:            uuid.New(),
		LeadID:        leadID,
		AssignedRepID: repID,
		FollowupAt:    followupAt,
		Note:          note,
		Status:        repository.StatusPending,
	}
	f.created = append(f.created, fu)
	return fu, nil
}

func (f *fakeRepo) GetByID(context.Context, uuid.UUID) (repository.Followup, error) {
	return repository.Followup{}, apperr.NotFound("follow-up not found")
}

func (f *fakeRepo) ListByLead(context.Context, uuid.UUID) ([]repository.Followup, error) {
	return nil, nil
}

func (f *fakeRepo) ListForRep(context.Context, uuid.UUID, string) ([]repository.Followup, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (repository.Followup, error) {
	return repository.Followup{ID: id, Status: status}, nil
}

func (f *fakeRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeRepo) MarkOverdueMissed(_ context.Context, cutoff time.Time) (int, error) {
	f.sweptAt = cutoff
	return f.swept, nil
}

func (f *fakeRepo) GetReminderInfo(context.Context, uuid.UUID) (repository.ReminderInfo, error) {
	if !f.reminderOK {
		return repository.ReminderInfo{}, apperr.NotFound("follow-up not found")
	}
	return f.reminder, nil
}

type fakeLeads struct {
	lead leadsrepo.Lead
	err  error
}

func (f *fakeLeads) GetByID(context.Context, leadssvc.Actor, uuid.UUID) (leadsrepo.Lead, error) {
	return f.lead, f.err
}

type fakeReminders struct {
	scheduled []scheduler.FollowupReminderPayload
	runAt     time.Time
}

func (f *fakeReminders) ScheduleFollowupReminder(_ context.Context, payload scheduler.FollowupReminderPayload, runAt time.Time) error {
	f.scheduled = append(f.scheduled, payload)
	f.runAt = runAt
	return nil
}

type fakeSender struct {
	reminders []email.FollowupReminderData
	to        string
}

func (f *fakeSender) SendLeadEmail(context.Context, string, string, string) error { return nil }

func (f *fakeSender) SendFollowupReminder(_ context.Context, to string, data email.FollowupReminderData) error {
	f.to = to
	f.reminders = append(f.reminders, data)
	return nil
}

func newService(repo *fakeRepo, leads *fakeLeads, reminders *fakeReminders, sender *fakeSender) *Service {
	log := logger.New("test")
	return New(repo, leads, reminders, sender, events.NewInMemoryBus(log), log)
}

func TestCreateAssignsLeadRepAndSchedulesReminder(t *testing.T) {
	repID := uuid.New()
	repo := &fakeRepo{}
	reminders := &fakeReminders{}
	svc := newService(repo, &fakeLeads{lead: leadsrepo.Lead{AssignedRepID: &repID}}, reminders, &fakeSender{})

	actor := leadssvc.Actor{ID: uuid.New(), Admin: true}
	at := time.Now().Add(24 * time.Hour)
	fu, err := svc.Create(context.Background(), actor, uuid.New(), at, "call back")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if fu.AssignedRepID == nil || *fu.AssignedRepID != repID {
		t.Fatalf("AssignedRepID = %v, want lead's rep %s", fu.AssignedRepID, repID)
	}
	if len(reminders.scheduled) != 1 {
		t.Fatalf("scheduled reminders = %d, want 1", len(reminders.scheduled))
	}
	if reminders.scheduled[0].FollowupID != fu.ID.String() {
		t.Fatalf("reminder followup id = %s, want %s", reminders.scheduled[0].FollowupID, fu.ID)
	}
	if !reminders.runAt.Equal(at) {
		t.Fatalf("reminder runAt = %v, want %v", reminders.runAt, at)
	}
}

func TestCreateFallsBackToActorWhenUnassigned(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeLeads{}, &fakeReminders{}, &fakeSender{})

	actor := leadssvc.Actor{ID: uuid.New()}
	fu, err := svc.Create(context.Background(), actor, uuid.New(), time.Now().Add(time.Hour), "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if fu.AssignedRepID == nil || *fu.AssignedRepID != actor.ID {
		t.Fatalf("AssignedRepID = %v, want actor %s", fu.AssignedRepID, actor.ID)
	}
}

func TestCreateRejectsPastTime(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeLeads{}, &fakeReminders{}, &fakeSender{})

	_, err := svc.Create(context.Background(), leadssvc.Actor{ID: uuid.New()}, uuid.New(), time.Now().Add(-time.Minute), "")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestCreateDeniedWhenLeadInaccessible(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeLeads{err: apperr.Forbidden("lead is not assigned to you")}, &fakeReminders{}, &fakeSender{})

	_, err := svc.Create(context.Background(), leadssvc.Actor{ID: uuid.New()}, uuid.New(), time.Now().Add(time.Hour), "")
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("Create() error = %v, want forbidden", err)
	}
}

func TestProcessReminderEmailsPendingOnly(t *testing.T) {
	sender := &fakeSender{}
	repo := &fakeRepo{
		reminderOK: true,
		reminder: repository.ReminderInfo{
			Followup: repository.Followup{
				LeadName:   "Jane Porter",
				Note:       "discuss renewal",
				Status:     repository.StatusPending,
				FollowupAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			},
			LeadEmail: "jane@acme.io",
			RepName:   "Sam Rivera",
			RepEmail:  "sam@leadflow.io",
		},
	}
	svc := newService(repo, &fakeLeads{}, &fakeReminders{}, sender)

	if err := svc.ProcessReminder(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ProcessReminder() error = %v", err)
	}
	if len(sender.reminders) != 1 {
		t.Fatalf("reminder emails sent = %d, want 1", len(sender.reminders))
	}
	if sender.to != "sam@leadflow.io" {
		t.Fatalf("reminder recipient = %q, want rep email", sender.to)
	}
	if sender.reminders[0].LeadName != "Jane Porter" {
		t.Fatalf("reminder lead = %q", sender.reminders[0].LeadName)
	}
}

func TestProcessReminderSkipsResolvedFollowup(t *testing.T) {
	sender := &fakeSender{}
	repo := &fakeRepo{
		reminderOK: true,
		reminder: repository.ReminderInfo{
			Followup: repository.Followup{Status: repository.StatusDone},
			RepEmail: "sam@leadflow.io",
		},
	}
	svc := newService(repo, &fakeLeads{}, &fakeReminders{}, sender)

	if err := svc.ProcessReminder(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ProcessReminder() error = %v", err)
	}
	if len(sender.reminders) != 0 {
		t.Fatalf("reminder emails sent = %d, want 0", len(sender.reminders))
	}
}

func TestProcessReminderIgnoresDeletedFollowup(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeLeads{}, &fakeReminders{}, &fakeSender{})

	if err := svc.ProcessReminder(context.Background(), uuid.New()); err != nil {
		t.Fatalf("ProcessReminder() error = %v, want nil for missing follow-up", err)
	}
}

func TestListMineRejectsUnknownDueScope(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeLeads{}, &fakeReminders{}, &fakeSender{})

	_, err := svc.ListMine(context.Background(), leadssvc.Actor{ID: uuid.New()}, "tomorrow")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("ListMine() error = %v, want bad request", err)
	}
}

func TestSweepOverdueUsesGracePeriod(t *testing.T) {
	repo := &fakeRepo{swept: 4}
	svc := newService(repo, &fakeLeads{}, &fakeReminders{}, &fakeSender{})

	before := time.Now().Add(-missedGrace)
	n, err := svc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("SweepOverdue() = %d, want 4", n)
	}
	if repo.sweptAt.Before(before.Add(-time.Minute)) || repo.sweptAt.After(time.Now()) {
		t.Fatalf("sweep cutoff = %v, want about an hour ago", repo.sweptAt)
	}
}
