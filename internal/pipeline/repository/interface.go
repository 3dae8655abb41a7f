package repository

import (
	"context"

	"github.com/google/uuid"
)

// Stage is a stored pipeline stage. IsWon and IsLost mark the terminal
// outcome stages the dashboards aggregate on; renaming a stage does not
// change its outcome.
type Stage struct {
	ID                 uuid.UUID
	Name               string
	StageOrder         int
	DefaultProbability int
	IsWon              bool
	IsLost             bool
	CreatedAt          string
	UpdatedAt          string
}

// CreateParams holds the fields for a new stage.
type CreateParams struct {
	Name               string
	StageOrder         int
	DefaultProbability int
	IsWon              bool
	IsLost             bool
}

// UpdateParams holds optional stage changes; nil fields are untouched.
type UpdateParams struct {
	Name               *string
	DefaultProbability *int
	IsWon              *bool
	IsLost             *bool
}

// Repository is the persistence surface for pipeline stages.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Stage, error)
	GetByID(ctx context.Context, id uuid.UUID) (Stage, error)
	GetByName(ctx context.Context, name string) (Stage, error)
	List(ctx context.Context) ([]Stage, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Stage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, stageIDs []uuid.UUID) error
	CountLeadsInStage(ctx context.Context, id uuid.UUID) (int, error)
}
