package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a stored account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    string
	UpdatedAt    string
}

// Repository is the persistence surface for accounts and refresh tokens.
type Repository interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName, role string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}
