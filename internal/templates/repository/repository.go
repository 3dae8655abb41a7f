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

const templateNotFoundMessage = "email template not found"

const templateColumns = `id, name, subject, body, created_by, created_at, updated_at`

const logColumns = `id, lead_id, template_id, sent_by, recipient, subject, body, status, sent_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new email template repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new template.
func (r *Repo) Create(ctx context.Context, name, subject, body string, createdBy uuid.UUID) (Template, error) {
	query := `
		INSERT INTO email_templates (name, subject, body, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + templateColumns

	tpl, err := scanTemplate(r.pool.QueryRow(ctx, query, name, subject, body, createdBy))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Template{}, apperr.Conflict("template name already exists")
		}
		return Template{}, fmt.Errorf("create template: %w", err)
	}
	return tpl, nil
}

// GetByID retrieves a template by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Template, error) {
	query := `SELECT ` + templateColumns + ` FROM email_templates WHERE id = $1`

	tpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, apperr.NotFound(templateNotFoundMessage)
		}
		return Template{}, fmt.Errorf("get template by id: %w", err)
	}
	return tpl, nil
}

// List retrieves all templates, newest first.
func (r *Repo) List(ctx context.Context) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM email_templates ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]Template, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return templates, nil
}

// Update applies the non-nil fields and returns the updated template.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Template, error) {
	query := `
		UPDATE email_templates SET
			name = COALESCE($2, name),
			subject = COALESCE($3, subject),
			body = COALESCE($4, body),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + templateColumns

	tpl, err := scanTemplate(r.pool.QueryRow(ctx, query, id, params.Name, params.Subject, params.Body))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Template{}, apperr.NotFound(templateNotFoundMessage)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Template{}, apperr.Conflict("template name already exists")
		}
		return Template{}, fmt.Errorf("update template: %w", err)
	}
	return tpl, nil
}

// Delete removes a template. Logs that reference it keep their copy of
// the rendered subject and body.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(templateNotFoundMessage)
	}
	return nil
}

// CreateLog records one outbound email attempt.
func (r *Repo) CreateLog(ctx context.Context, log EmailLog) (EmailLog, error) {
	query := `
		INSERT INTO email_logs (lead_id, template_id, sent_by, recipient, subject, body, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + logColumns

	out, err := scanLog(r.pool.QueryRow(ctx, query,
		log.LeadID, log.TemplateID, log.SentBy, log.Recipient, log.Subject, log.Body, log.Status))
	if err != nil {
		return EmailLog{}, fmt.Errorf("create email log: %w", err)
	}
	return out, nil
}

// ListLogsByLead retrieves a lead's outbound mail history, newest first.
func (r *Repo) ListLogsByLead(ctx context.Context, leadID uuid.UUID) ([]EmailLog, error) {
	query := `SELECT ` + logColumns + ` FROM email_logs WHERE lead_id = $1 ORDER BY sent_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	logs := make([]EmailLog, 0)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email logs: %w", err)
	}
	return logs, nil
}

func scanTemplate(row pgx.Row) (Template, error) {
	var tpl Template
	var createdAt, updatedAt time.Time

	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Subject, &tpl.Body, &tpl.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return Template{}, err
	}

	tpl.CreatedAt = createdAt.Format(time.RFC3339)
	tpl.UpdatedAt = updatedAt.Format(time.RFC3339)

	return tpl, nil
}

func scanLog(row pgx.Row) (EmailLog, error) {
	var l EmailLog
	var sentAt time.Time

	err := row.Scan(&l.ID, &l.LeadID, &l.TemplateID, &l.SentBy, &l.Recipient, &l.Subject, &l.Body, &l.Status, &sentAt)
	if err != nil {
		return EmailLog{}, err
	}

	l.SentAt = sentAt.Format(time.RFC3339)

	return l, nil
}
