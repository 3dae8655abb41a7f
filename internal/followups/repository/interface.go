package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Follow-up status values.
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusMissed  = "missed"
)

// Due scopes for rep listings.
const (
	DueAny     = ""
	DueToday   = "today"
	DueOverdue = "overdue"
)

// Followup is a stored follow-up with the lead name joined in.
type Followup struct {
	ID            uuid.UUID
	LeadID        uuid.UUID
	LeadName      string
	AssignedRepID *uuid.UUID
	FollowupAt    time.Time
	Note          string
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

// ReminderInfo carries everything a reminder email needs.
type ReminderInfo struct {
	Followup  Followup
	LeadEmail string
	RepName   string
	RepEmail  string
}

// Repository is the persistence surface for follow-ups.
type Repository interface {
	Create(ctx context.Context, leadID uuid.UUID, repID *uuid.UUID, followupAt time.Time, note string) (Followup, error)
	GetByID(ctx context.Context, id uuid.UUID) (Followup, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]Followup, error)
	ListForRep(ctx context.Context, repID uuid.UUID, due string) ([]Followup, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Followup, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkOverdueMissed(ctx context.Context, cutoff time.Time) (int, error)
	GetReminderInfo(ctx context.Context, id uuid.UUID) (ReminderInfo, error)
}
