package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/platform/apperr"
)

const followupNotFoundMessage = "follow-up not found"

const followupColumns = `
	f.id, f.lead_id, l.name, f.assigned_rep_id, f.followup_at, COALESCE(f.note, ''),
	f.status, f.created_at, f.updated_at`

const followupFrom = ` FROM lead_followups f JOIN leads l ON l.id = f.lead_id`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow-ups repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a pending follow-up.
func (r *Repo) Create(ctx context.Context, leadID uuid.UUID, repID *uuid.UUID, followupAt time.Time, note string) (Followup, error) {
	query := `
		INSERT INTO lead_followups (lead_id, assigned_rep_id, followup_at, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, leadID, repID, followupAt, note).Scan(&id)
	if err != nil {
		return Followup{}, fmt.Errorf("create followup: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a follow-up with its lead name.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Followup, error) {
	query := `SELECT` + followupColumns + followupFrom + ` WHERE f.id = $1`

	f, err := scanFollowup(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Followup{}, apperr.NotFound(followupNotFoundMessage)
		}
		return Followup{}, fmt.Errorf("get followup by id: %w", err)
	}
	return f, nil
}

// ListByLead retrieves a lead's follow-ups, soonest first.
func (r *Repo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]Followup, error) {
	query := `SELECT` + followupColumns + followupFrom + ` WHERE f.lead_id = $1 ORDER BY f.followup_at ASC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list followups by lead: %w", err)
	}
	defer rows.Close()

	return scanFollowups(rows)
}

// ListForRep retrieves unresolved follow-ups assigned to a rep,
// optionally narrowed to those due today or already overdue.
func (r *Repo) ListForRep(ctx context.Context, repID uuid.UUID, due string) ([]Followup, error) {
	where := ` WHERE f.assigned_rep_id = $1 AND f.status = 'pending'`
	switch due {
	case DueToday:
		where += ` AND f.followup_at >= date_trunc('day', now())
			AND f.followup_at < date_trunc('day', now()) + interval '1 day'`
	case DueOverdue:
		where += ` AND f.followup_at < now()`
	}

	query := `SELECT` + followupColumns + followupFrom + where + `
		ORDER BY f.followup_at ASC`

	rows, err := r.pool.Query(ctx, query, repID)
	if err != nil {
		return nil, fmt.Errorf("list followups for rep: %w", err)
	}
	defer rows.Close()

	return scanFollowups(rows)
}

// UpdateStatus resolves or reopens a follow-up.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Followup, error) {
	query := `UPDATE lead_followups SET status = $2, updated_at = now() WHERE id = $1 RETURNING id`

	var returned uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&returned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Followup{}, apperr.NotFound(followupNotFoundMessage)
		}
		return Followup{}, fmt.Errorf("update followup status: %w", err)
	}

	return r.GetByID(ctx, returned)
}

// Delete removes a follow-up.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lead_followups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete followup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(followupNotFoundMessage)
	}
	return nil
}

// MarkOverdueMissed flips pending follow-ups due before the cutoff to
// missed and returns how many changed.
func (r *Repo) MarkOverdueMissed(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		UPDATE lead_followups SET status = 'missed', updated_at = now()
		WHERE status = 'pending' AND followup_at < $1`

	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark overdue followups: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// GetReminderInfo loads a follow-up plus lead and rep contact details.
func (r *Repo) GetReminderInfo(ctx context.Context, id uuid.UUID) (ReminderInfo, error) {
	query := `
		SELECT` + followupColumns + `, l.email, COALESCE(u.full_name, ''), COALESCE(u.email, '')
		` + followupFrom + `
		LEFT JOIN users u ON u.id = f.assigned_rep_id
		WHERE f.id = $1`

	var info ReminderInfo
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&info.Followup.ID, &info.Followup.LeadID, &info.Followup.LeadName,
		&info.Followup.AssignedRepID, &info.Followup.FollowupAt, &info.Followup.Note,
		&info.Followup.Status, &createdAt, &updatedAt,
		&info.LeadEmail, &info.RepName, &info.RepEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReminderInfo{}, apperr.NotFound(followupNotFoundMessage)
		}
		return ReminderInfo{}, fmt.Errorf("get reminder info: %w", err)
	}

	info.Followup.CreatedAt = createdAt.Format(time.RFC3339)
	info.Followup.UpdatedAt = updatedAt.Format(time.RFC3339)

	return info, nil
}

func scanFollowup(row pgx.Row) (Followup, error) {
	var f Followup
	var createdAt, updatedAt time.Time

	err := row.Scan(&f.ID, &f.LeadID, &f.LeadName, &f.AssignedRepID, &f.FollowupAt,
		&f.Note, &f.Status, &createdAt, &updatedAt)
	if err != nil {
		return Followup{}, err
	}

	f.CreatedAt = createdAt.Format(time.RFC3339)
	f.UpdatedAt = updatedAt.Format(time.RFC3339)

	return f, nil
}

func scanFollowups(rows pgx.Rows) ([]Followup, error) {
	followups := make([]Followup, 0)
	for rows.Next() {
		f, err := scanFollowup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan followup: %w", err)
		}
		followups = append(followups, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate followups: %w", err)
	}
	return followups, nil
}
