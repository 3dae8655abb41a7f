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

const userColumns = `id, email, full_name, role, is_active, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new account.
func (r *Repo) Create(ctx context.Context, email, passwordHash, fullName, role string) (User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, email, passwordHash, fullName, role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, apperr.Conflict("email already registered")
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID retrieves an account by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// List retrieves all accounts ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListReps retrieves active rep accounts for assignment pickers.
func (r *Repo) ListReps(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'rep' AND is_active = true ORDER BY full_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reps: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Update applies the non-nil fields and returns the updated account.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (User, error) {
	query := `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			role = COALESCE($3, role),
			is_active = COALESCE($4, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.pool.QueryRow(ctx, query, id, params.FullName, params.Role, params.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var createdAt, updatedAt time.Time

	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}

	u.CreatedAt = createdAt.Format(time.RFC3339)
	u.UpdatedAt = updatedAt.Format(time.RFC3339)

	return u, nil
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
