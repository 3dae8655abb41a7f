package repository

import (
	"context"

	"github.com/google/uuid"
)

// User is a stored account as seen by the management module.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Role      string
	IsActive  bool
	CreatedAt string
	UpdatedAt string
}

// UpdateParams holds optional account changes; nil fields are untouched.
type UpdateParams struct {
	FullName *string
	Role     *string
	IsActive *bool
}

// Repository is the persistence surface for user management.
type Repository interface {
	Create(ctx context.Context, email, passwordHash, fullName, role string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	ListReps(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (User, error)
}
