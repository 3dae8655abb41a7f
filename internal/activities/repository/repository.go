package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activities repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create appends a timeline entry.
func (r *Repo) Create(ctx context.Context, leadID uuid.UUID, userID *uuid.UUID, activityType, description string) (Activity, error) {
	query := `
		INSERT INTO lead_activities (lead_id, user_id, activity_type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, user_id, activity_type, description, created_at`

	a, err := scanActivity(r.pool.QueryRow(ctx, query, leadID, userID, activityType, description))
	if err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return a, nil
}

// ListByLead retrieves a lead's timeline, newest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	query := `
		SELECT id, lead_id, user_id, activity_type, description, created_at
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

func scanActivity(row pgx.Row) (Activity, error) {
	var a Activity
	var createdAt time.Time

	err := row.Scan(&a.ID, &a.LeadID, &a.UserID, &a.ActivityType, &a.Description, &createdAt)
	if err != nil {
		return Activity{}, err
	}

	a.CreatedAt = createdAt.Format(time.RFC3339)
	return a, nil
}
