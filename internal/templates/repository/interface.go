package repository

import (
	"context"

	"github.com/google/uuid"
)

// Email log statuses.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Template is a reusable outbound email with placeholders.
type Template struct {
	ID        uuid.UUID
	Name      string
	Subject   string
	Body      string
	CreatedBy *uuid.UUID
	CreatedAt string
	UpdatedAt string
}

// EmailLog records one outbound email to a lead, sent or failed.
type EmailLog struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	TemplateID *uuid.UUID
	SentBy     *uuid.UUID
	Recipient  string
	Subject    string
	Body       string
	Status     string
	SentAt     string
}

// UpdateParams carries the fields being changed on a template. Nil
// pointers leave the column untouched.
type UpdateParams struct {
	Name    *string
	Subject *string
	Body    *string
}

// Repository is the persistence surface for templates and email logs.
type Repository interface {
	Create(ctx context.Context, name, subject, body string, createdBy uuid.UUID) (Template, error)
	GetByID(ctx context.Context, id uuid.UUID) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Template, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLog(ctx context.Context, log EmailLog) (EmailLog, error)
	ListLogsByLead(ctx context.Context, leadID uuid.UUID) ([]EmailLog, error)
}
