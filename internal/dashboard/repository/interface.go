package repository

import (
	"context"

	"github.com/google/uuid"
)

// StageCount is the number of leads sitting in one pipeline stage.
type StageCount struct {
	StageID    uuid.UUID
	StageName  string
	StageOrder int
	Count      int
}

// Repository runs the aggregate queries behind the dashboards. An
// optional rep ID scopes a query to that rep's assigned leads; nil
// means the whole workspace.
type Repository interface {
	CountLeads(ctx context.Context, repID *uuid.UUID) (int, error)
	CountWonLeads(ctx context.Context, repID *uuid.UUID) (int, error)
	TotalValue(ctx context.Context, repID *uuid.UUID) (float64, error)
	PipelineValue(ctx context.Context, repID *uuid.UUID) (float64, error)
	WonRevenue(ctx context.Context, repID *uuid.UUID) (float64, error)
	AverageScore(ctx context.Context, repID *uuid.UUID) (float64, error)
	CountOverdueFollowups(ctx context.Context, repID *uuid.UUID) (int, error)
	CountFollowupsDueToday(ctx context.Context, repID uuid.UUID) (int, error)
	StageCounts(ctx context.Context, repID *uuid.UUID) ([]StageCount, error)
}
