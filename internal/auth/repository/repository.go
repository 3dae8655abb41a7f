package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/platform/apperr"
)

const userNotFoundMessage = "user not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateUser inserts a new account.
func (r *Repo) CreateUser(ctx context.Context, email, passwordHash, fullName, role string) (User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, full_name, role, is_active, created_at, updated_at`

	var u User
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, email, passwordHash, fullName, role).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	u.CreatedAt = createdAt.Format(time.RFC3339)
	u.UpdatedAt = updatedAt.Format(time.RFC3339)

	return u, nil
}

// GetUserByEmail retrieves an account by email.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email), "get user by email")
}

// GetUserByID retrieves an account by ID.
func (r *Repo) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id), "get user by id")
}

// CountUsers returns the number of accounts.
func (r *Repo) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// UpdatePassword replaces the stored password hash for an account.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// CreateRefreshToken stores a hashed refresh token.
func (r *Repo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken looks up an unrevoked refresh token by hash.
func (r *Repo) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	query := `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL`

	var userID uuid.UUID
	var expiresAt time.Time

	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, time.Time{}, apperr.Unauthorized("refresh token not found")
		}
		return uuid.Nil, time.Time{}, fmt.Errorf("get refresh token: %w", err)
	}
	return userID, expiresAt, nil
}

// RevokeRefreshToken marks a refresh token revoked.
func (r *Repo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	query := `UPDATE refresh_tokens SET revoked_at = now() WHERE token_hash = $1 AND revoked_at IS NULL`
	if _, err := r.pool.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllRefreshTokens revokes every active token for a user.
func (r *Repo) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}

func (r *Repo) scanUser(row pgx.Row, op string) (User, error) {
	var u User
	var createdAt, updatedAt time.Time

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("%s: %w", op, err)
	}

	u.CreatedAt = createdAt.Format(time.RFC3339)
	u.UpdatedAt = updatedAt.Format(time.RFC3339)

	return u, nil
}
