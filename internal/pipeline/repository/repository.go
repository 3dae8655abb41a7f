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

const stageNotFoundMessage = "pipeline stage not found"

const stageColumns = `id, name, stage_order, default_probability, is_won, is_lost, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pipeline stage repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new stage.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Stage, error) {
	query := `
		INSERT INTO pipeline_stages (name, stage_order, default_probability, is_won, is_lost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + stageColumns

	st, err := scanStage(r.pool.QueryRow(ctx, query,
		params.Name, params.StageOrder, params.DefaultProbability, params.IsWon, params.IsLost))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Stage{}, apperr.Conflict("stage name already exists")
		}
		return Stage{}, fmt.Errorf("create stage: %w", err)
	}
	return st, nil
}

// GetByID retrieves a stage by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM pipeline_stages WHERE id = $1`

	st, err := scanStage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Stage{}, fmt.Errorf("get stage by id: %w", err)
	}
	return st, nil
}

// GetByName retrieves a stage by exact name.
func (r *Repo) GetByName(ctx context.Context, name string) (Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM pipeline_stages WHERE name = $1`

	st, err := scanStage(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Stage{}, fmt.Errorf("get stage by name: %w", err)
	}
	return st, nil
}

// List retrieves all stages in board order.
func (r *Repo) List(ctx context.Context) ([]Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM pipeline_stages ORDER BY stage_order ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	stages := make([]Stage, 0)
	for rows.Next() {
		st, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stages: %w", err)
	}
	return stages, nil
}

// Update applies the non-nil fields and returns the updated stage.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (Stage, error) {
	query := `
		UPDATE pipeline_stages SET
			name = COALESCE($2, name),
			default_probability = COALESCE($3, default_probability),
			is_won = COALESCE($4, is_won),
			is_lost = COALESCE($5, is_lost),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + stageColumns

	st, err := scanStage(r.pool.QueryRow(ctx, query,
		id, params.Name, params.DefaultProbability, params.IsWon, params.IsLost))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return Stage{}, fmt.Errorf("update stage: %w", err)
	}
	return st, nil
}

// Delete removes a stage.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pipeline_stages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(stageNotFoundMessage)
	}
	return nil
}

// Reorder rewrites stage_order in one transaction so the board never
// observes a half-applied ordering.
func (r *Repo) Reorder(ctx context.Context, stageIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range stageIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE pipeline_stages SET stage_order = $2, updated_at = now() WHERE id = $1`,
			id, i+1)
		if err != nil {
			return fmt.Errorf("reorder stage: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(stageNotFoundMessage)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

// CountLeadsInStage returns how many leads currently sit in the stage.
func (r *Repo) CountLeadsInStage(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE status = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count leads in stage: %w", err)
	}
	return count, nil
}

func scanStage(row pgx.Row) (Stage, error) {
	var st Stage
	var createdAt, updatedAt time.Time

	err := row.Scan(&st.ID, &st.Name, &st.StageOrder, &st.DefaultProbability, &st.IsWon, &st.IsLost, &createdAt, &updatedAt)
	if err != nil {
		return Stage{}, err
	}

	st.CreatedAt = createdAt.Format(time.RFC3339)
	st.UpdatedAt = updatedAt.Format(time.RFC3339)

	return st, nil
}
