package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CountLeads counts leads, scoped to a rep when repID is set.
func (r *Repo) CountLeads(ctx context.Context, repID *uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM leads WHERE ($1::uuid IS NULL OR assigned_rep_id = $1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// CountWonLeads counts leads sitting in a won stage.
func (r *Repo) CountWonLeads(ctx context.Context, repID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM leads l
		JOIN pipeline_stages ps ON ps.id = l.status
		WHERE ps.is_won AND ($1::uuid IS NULL OR l.assigned_rep_id = $1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count won leads: %w", err)
	}
	return count, nil
}

// TotalValue sums expected_value across all leads.
func (r *Repo) TotalValue(ctx context.Context, repID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(expected_value), 0)
		FROM leads
		WHERE ($1::uuid IS NULL OR assigned_rep_id = $1)`

	var total float64
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total value: %w", err)
	}
	return total, nil
}

// PipelineValue sums expected_value over leads still in play, meaning
// not in a won or lost stage.
func (r *Repo) PipelineValue(ctx context.Context, repID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(l.expected_value), 0)
		FROM leads l
		LEFT JOIN pipeline_stages ps ON ps.id = l.status
		WHERE (ps.id IS NULL OR NOT (ps.is_won OR ps.is_lost))
		  AND ($1::uuid IS NULL OR l.assigned_rep_id = $1)`

	var total float64
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&total); err != nil {
		return 0, fmt.Errorf("pipeline value: %w", err)
	}
	return total, nil
}

// WonRevenue sums expected_value over leads in a won stage.
func (r *Repo) WonRevenue(ctx context.Context, repID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(l.expected_value), 0)
		FROM leads l
		JOIN pipeline_stages ps ON ps.id = l.status
		WHERE ps.is_won AND ($1::uuid IS NULL OR l.assigned_rep_id = $1)`

	var total float64
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&total); err != nil {
		return 0, fmt.Errorf("won revenue: %w", err)
	}
	return total, nil
}

// AverageScore averages lead scores, 0 when there are no leads.
func (r *Repo) AverageScore(ctx context.Context, repID *uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(AVG(score), 0)
		FROM leads
		WHERE ($1::uuid IS NULL OR assigned_rep_id = $1)`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	return avg, nil
}

// CountOverdueFollowups counts pending follow-ups whose time has passed.
func (r *Repo) CountOverdueFollowups(ctx context.Context, repID *uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lead_followups
		WHERE status = 'pending' AND followup_at < now()
		  AND ($1::uuid IS NULL OR assigned_rep_id = $1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overdue followups: %w", err)
	}
	return count, nil
}

// CountFollowupsDueToday counts a rep's pending follow-ups due before
// the end of the current day.
func (r *Repo) CountFollowupsDueToday(ctx context.Context, repID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lead_followups
		WHERE status = 'pending'
		  AND assigned_rep_id = $1
		  AND followup_at >= date_trunc('day', now())
		  AND followup_at < date_trunc('day', now()) + interval '1 day'`

	var count int
	if err := r.pool.QueryRow(ctx, query, repID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count followups due today: %w", err)
	}
	return count, nil
}

// StageCounts returns lead counts per stage in board order. Stages with
// no leads are included with a zero count.
func (r *Repo) StageCounts(ctx context.Context, repID *uuid.UUID) ([]StageCount, error) {
	query := `
		SELECT ps.id, ps.name, ps.stage_order, COUNT(l.id)
		FROM pipeline_stages ps
		LEFT JOIN leads l ON l.status = ps.id AND ($1::uuid IS NULL OR l.assigned_rep_id = $1)
		GROUP BY ps.id, ps.name, ps.stage_order
		ORDER BY ps.stage_order ASC`

	rows, err := r.pool.Query(ctx, query, repID)
	if err != nil {
		return nil, fmt.Errorf("stage counts: %w", err)
	}
	defer rows.Close()

	counts := make([]StageCount, 0)
	for rows.Next() {
		var sc StageCount
		if err := rows.Scan(&sc.StageID, &sc.StageName, &sc.StageOrder, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage counts: %w", err)
	}
	return counts, nil
}
