package repository

import (
	"context"

	"github.com/google/uuid"
)

// Activity types recognized on a lead timeline. System entries are
// written by event handlers, the rest by reps.
const (
	TypeNote    = "note"
	TypeCall    = "call"
	TypeEmail   = "email"
	TypeMeeting = "meeting"
	TypeSystem  = "system"
)

// Activity is an immutable timeline entry on a lead.
type Activity struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	UserID       *uuid.UUID
	ActivityType string
	Description  string
	CreatedAt    string
}

// Repository is the persistence surface for lead activities.
type Repository interface {
	Create(ctx context.Context, leadID uuid.UUID, userID *uuid.UUID, activityType, description string) (Activity, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]Activity, error)
}
