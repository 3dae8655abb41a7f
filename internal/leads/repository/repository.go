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

	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `
	l.id, l.name, l.email, l.phone, l.company, l.location, l.source,
	l.status, COALESCE(ps.name, ''), COALESCE(l.expected_value, 0),
	l.score, l.score_reason, l.assigned_rep_id, l.created_by,
	(SELECT MIN(f.followup_at) FROM lead_followups f
		WHERE f.lead_id = l.id AND f.status = 'pending'),
	l.created_at, l.updated_at`

const leadFrom = ` FROM leads l LEFT JOIN pipeline_stages ps ON ps.id = l.status`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new lead and returns it with the stage name joined.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (name, email, phone, company, location, source, status,
			expected_value, score, score_reason, assigned_rep_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.Company, params.Location,
		params.Source, params.StatusID, params.ExpectedValue, params.Score,
		params.ScoreReason, params.AssignedRepID, params.CreatedBy,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Lead{}, apperr.Conflict("a lead with this email already exists")
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a lead by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT` + leadColumns + leadFrom + ` WHERE l.id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads matching the filters plus the unpaginated total.
func (r *Repo) List(ctx context.Context, filters ListFilters) ([]Lead, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filters.VisibleTo != nil {
		args = append(args, *filters.VisibleTo)
		n := len(args)
		where += fmt.Sprintf(" AND (l.assigned_rep_id = $%d OR l.created_by = $%d)", n, n)
	}
	if filters.AssignedRepID != nil {
		args = append(args, *filters.AssignedRepID)
		where += fmt.Sprintf(" AND l.assigned_rep_id = $%d", len(args))
	}
	if filters.StatusID != nil {
		args = append(args, *filters.StatusID)
		where += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (l.name ILIKE $%d OR l.email ILIKE $%d OR l.company ILIKE $%d)", n, n, n)
	}
	if filters.Source != "" {
		args = append(args, filters.Source)
		where += fmt.Sprintf(" AND l.source ILIKE $%d", len(args))
	}
	if filters.CreatedFrom != nil {
		args = append(args, *filters.CreatedFrom)
		where += fmt.Sprintf(" AND l.created_at >= $%d", len(args))
	}
	if filters.CreatedTo != nil {
		args = append(args, *filters.CreatedTo)
		where += fmt.Sprintf(" AND l.created_at < $%d", len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*)` + leadFrom + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT` + leadColumns + leadFrom + where + ` ORDER BY l.created_at DESC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListAll retrieves every lead, optionally scoped to what one rep can
// see. Used by the board and the CSV export.
func (r *Repo) ListAll(ctx context.Context, visibleTo *uuid.UUID) ([]Lead, error) {
	query := `SELECT` + leadColumns + leadFrom
	args := []interface{}{}
	if visibleTo != nil {
		args = append(args, *visibleTo)
		query += ` WHERE (l.assigned_rep_id = $1 OR l.created_by = $1)`
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Update applies the non-nil fields and the recomputed score.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Lead, error) {
	query := `
		UPDATE leads SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			company = COALESCE($5, company),
			location = COALESCE($6, location),
			source = COALESCE($7, source),
			expected_value = COALESCE($8, expected_value),
			assigned_rep_id = COALESCE($9, assigned_rep_id),
			score = $10,
			score_reason = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING id`

	var returned uuid.UUID
	err := r.pool.QueryRow(ctx, query, id,
		params.Name, params.Email, params.Phone, params.Company, params.Location,
		params.Source, params.ExpectedValue, params.AssignedRepID,
		params.Score, params.ScoreReason,
	).Scan(&returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Lead{}, apperr.Conflict("a lead with this email already exists")
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}

	return r.GetByID(ctx, returned)
}

// Delete removes a lead.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// UpdateStage moves a lead to a stage and stores the recomputed score.
func (r *Repo) UpdateStage(ctx context.Context, id uuid.UUID, statusID uuid.UUID, score int, scoreReason string) (Lead, error) {
	query := `
		UPDATE leads SET status = $2, score = $3, score_reason = $4, updated_at = now()
		WHERE id = $1
		RETURNING id`

	var returned uuid.UUID
	err := r.pool.QueryRow(ctx, query, id, statusID, score, scoreReason).Scan(&returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead stage: %w", err)
	}

	return r.GetByID(ctx, returned)
}

// Assign sets or clears the lead's assigned rep.
func (r *Repo) Assign(ctx context.Context, id uuid.UUID, repID *uuid.UUID) (Lead, error) {
	query := `
		UPDATE leads SET assigned_rep_id = $2, updated_at = now()
		WHERE id = $1
		RETURNING id`

	var returned uuid.UUID
	err := r.pool.QueryRow(ctx, query, id, repID).Scan(&returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("assign lead: %w", err)
	}

	return r.GetByID(ctx, returned)
}

// EmailExists reports whether a lead with the exact email is stored.
func (r *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leads WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lead email exists: %w", err)
	}
	return exists, nil
}

// InsertBatch persists imported leads in one transaction. Either every
// lead is stored or none are.
func (r *Repo) InsertBatch(ctx context.Context, leads []importer.NewLead) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lead batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO leads (name, email, phone, company, location, source, status,
			expected_value, score, score_reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT id FROM pipeline_stages WHERE name = $7),
			$8, $9, $10, $11)`

	for _, lead := range leads {
		var status interface{}
		if lead.Status != "" {
			status = lead.Status
		}
		_, err := tx.Exec(ctx, query,
			lead.Name, lead.Email, lead.Phone, lead.Company, lead.Location,
			lead.Source, status, lead.ExpectedValue, lead.Score, lead.ScoreReason,
			lead.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert imported lead: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lead batch: %w", err)
	}
	return nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	var createdAt, updatedAt time.Time
	var phone, company, location, source *string
	var nextFollowup *time.Time

	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &phone, &company, &location, &source,
		&l.StatusID, &l.StatusName, &l.ExpectedValue,
		&l.Score, &l.ScoreReason, &l.AssignedRepID, &l.CreatedBy,
		&nextFollowup, &createdAt, &updatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	l.Phone = deref(phone)
	l.Company = deref(company)
	l.Location = deref(location)
	l.Source = deref(source)
	if nextFollowup != nil {
		formatted := nextFollowup.Format(time.RFC3339)
		l.NextFollowupAt = &formatted
	}
	l.CreatedAt = createdAt.Format(time.RFC3339)
	l.UpdatedAt = updatedAt.Format(time.RFC3339)

	return l, nil
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
