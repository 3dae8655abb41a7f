// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadflow_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the system, either
// through the API or a CSV import.
type LeadCreated struct {
	BaseEvent
	LeadID        uuid.UUID  `json:"leadId"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Source        string     `json:"source,omitempty"`
	Score         int        `json:"score"`
	AssignedRepID *uuid.UUID `json:"assignedRepId,omitempty"`
	CreatedBy     *uuid.UUID `json:"createdBy,omitempty"`
	Imported      bool       `json:"imported"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStageChanged is published when a lead moves to a different
// pipeline stage.
type LeadStageChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	FromStage string    `json:"fromStage"`
	ToStage   string    `json:"toStage"`
	ChangedBy uuid.UUID `json:"changedBy"`
}

func (e LeadStageChanged) EventName() string { return "leads.lead.stage_changed" }

// LeadAssigned is published when a lead is assigned to a rep.
type LeadAssigned struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	RepID      uuid.UUID `json:"repId"`
	AssignedBy uuid.UUID `json:"assignedBy"`
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// LeadsImported is published after a CSV import batch completes.
type LeadsImported struct {
	BaseEvent
	ImportedBy uuid.UUID `json:"importedBy"`
	Total      int       `json:"total"`
	Imported   int       `json:"imported"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

func (e LeadsImported) EventName() string { return "leads.import.completed" }

// =============================================================================
// Follow-up Domain Events
// =============================================================================

// FollowupCreated is published when a follow-up is scheduled for a lead.
type FollowupCreated struct {
	BaseEvent
	FollowupID    uuid.UUID  `json:"followupId"`
	LeadID        uuid.UUID  `json:"leadId"`
	AssignedRepID *uuid.UUID `json:"assignedRepId,omitempty"`
	FollowupAt    time.Time  `json:"followupAt"`
}

func (e FollowupCreated) EventName() string { return "followups.followup.created" }

// =============================================================================
// Email Domain Events
// =============================================================================

// LeadEmailSent is published after an email is sent to a lead.
type LeadEmailSent struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	TemplateID *uuid.UUID `json:"templateId,omitempty"`
	SentBy     uuid.UUID  `json:"sentBy"`
	Recipient  string     `json:"recipient"`
	Subject    string     `json:"subject"`
	Success    bool       `json:"success"`
}

func (e LeadEmailSent) EventName() string { return "email.lead_email.sent" }
