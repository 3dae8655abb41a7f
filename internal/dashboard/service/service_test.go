package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"leadflow_backend/internal/dashboard/repository"
	"leadflow_backend/platform/logger"
)

type fakeRepo struct {
	leads    int
	won      int
	total    float64
	pipeline float64
	revenue  float64
	avg      float64
	overdue  int
	dueToday int
	stages   []repository.StageCount

	countErr error
}

func (f *fakeRepo) CountLeads(context.Context, *uuid.UUID) (int, error) {
	return f.leads, f.countErr
}
func (f *fakeRepo) CountWonLeads(context.Context, *uuid.UUID) (int, error) { return f.won, nil }
func (f *fakeRepo) TotalValue(context.Context, *uuid.UUID) (float64, error) {
	return f.total, nil
}
func (f *fakeRepo) PipelineValue(context.Context, *uuid.UUID) (float64, error) {
	return f.pipeline, nil
}
func (f *fakeRepo) WonRevenue(context.Context, *uuid.UUID) (float64, error) {
	return f.revenue, nil
}
func (f *fakeRepo) AverageScore(context.Context, *uuid.UUID) (float64, error) { return f.avg, nil }
func (f *fakeRepo) CountOverdueFollowups(context.Context, *uuid.UUID) (int, error) {
	return f.overdue, nil
}
func (f *fakeRepo) CountFollowupsDueToday(context.Context, uuid.UUID) (int, error) {
	return f.dueToday, nil
}
func (f *fakeRepo) StageCounts(context.Context, *uuid.UUID) ([]repository.StageCount, error) {
	return f.stages, nil
}

func TestAdminStatsComputesConversionRate(t *testing.T) {
	repo := &fakeRepo{leads: 8, won: 2, total: 10000, revenue: 4000, avg: 55.4567, overdue: 3}
	svc := New(repo, logger.New("test"))

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats() error = %v", err)
	}

	if stats.TotalLeads != 8 {
		t.Fatalf("TotalLeads = %d, want 8", stats.TotalLeads)
	}
	if stats.ConversionRate != 25 {
		t.Fatalf("ConversionRate = %v, want 25", stats.ConversionRate)
	}
	if stats.AverageScore != 55.46 {
		t.Fatalf("AverageScore = %v, want 55.46", stats.AverageScore)
	}
	if stats.OverdueFollowups != 3 {
		t.Fatalf("OverdueFollowups = %d, want 3", stats.OverdueFollowups)
	}
}

func TestAdminStatsZeroLeadsHasZeroRate(t *testing.T) {
	svc := New(&fakeRepo{}, logger.New("test"))

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats() error = %v", err)
	}
	if stats.ConversionRate != 0 {
		t.Fatalf("ConversionRate = %v, want 0", stats.ConversionRate)
	}
}

func TestRepStatsScopedFields(t *testing.T) {
	repo := &fakeRepo{leads: 3, won: 1, pipeline: 7500.5, revenue: 2000, dueToday: 2}
	svc := New(repo, logger.New("test"))

	stats, err := svc.RepStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("RepStats() error = %v", err)
	}

	if stats.PipelineValue != 7500.5 {
		t.Fatalf("PipelineValue = %v, want 7500.5", stats.PipelineValue)
	}
	if stats.FollowupsDueToday != 2 {
		t.Fatalf("FollowupsDueToday = %d, want 2", stats.FollowupsDueToday)
	}
	if stats.ConversionRate != 33.33 {
		t.Fatalf("ConversionRate = %v, want 33.33", stats.ConversionRate)
	}
}

func TestAdminStatsPropagatesQueryError(t *testing.T) {
	repo := &fakeRepo{countErr: errors.New("connection refused")}
	svc := New(repo, logger.New("test"))

	if _, err := svc.AdminStats(context.Background()); err == nil {
		t.Fatal("AdminStats() expected error, got nil")
	}
}
