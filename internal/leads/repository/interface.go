package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadflow_backend/internal/leads/importer"
)

// Lead is a stored lead with its stage name and next pending follow-up
// joined in.
type Lead struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	Company        string
	Location       string
	Source         string
	StatusID       *uuid.UUID
	StatusName     string
	ExpectedValue  float64
	Score          int
	ScoreReason    string
	AssignedRepID  *uuid.UUID
	CreatedBy      *uuid.UUID
	NextFollowupAt *string
	CreatedAt      string
	UpdatedAt      string
}

// CreateParams holds the fields for a new lead.
type CreateParams struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	Location      string
	Source        string
	StatusID      *uuid.UUID
	ExpectedValue float64
	Score         int
	ScoreReason   string
	AssignedRepID *uuid.UUID
	CreatedBy     *uuid.UUID
}

// UpdateParams holds optional lead changes; nil fields are untouched.
// Score and ScoreReason are always rewritten because every update
// recomputes them.
type UpdateParams struct {
	Name          *string
	Email         *string
	Phone         *string
	Company       *string
	Location      *string
	Source        *string
	ExpectedValue *float64
	AssignedRepID *uuid.UUID
	Score         int
	ScoreReason   string
}

// ListFilters narrows lead listings. A nil field means no filter.
// VisibleTo restricts rows to leads assigned to or created by the given
// rep; AssignedRepID matches the assignment field alone.
type ListFilters struct {
	VisibleTo     *uuid.UUID
	AssignedRepID *uuid.UUID
	StatusID      *uuid.UUID
	Search        string
	Source        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// Repository is the persistence surface for leads. It also serves the
// CSV importer through the importer.LeadStore methods.
type Repository interface {
	importer.LeadStore

	Create(ctx context.Context, params CreateParams) (Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, filters ListFilters) ([]Lead, int, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStage(ctx context.Context, id uuid.UUID, statusID uuid.UUID, score int, scoreReason string) (Lead, error)
	Assign(ctx context.Context, id uuid.UUID, repID *uuid.UUID) (Lead, error)
	ListAll(ctx context.Context, visibleTo *uuid.UUID) ([]Lead, error)
}
