// Package service computes dashboard statistics. Each dashboard fans
// its aggregate queries out in parallel since none depend on another.
package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"leadflow_backend/internal/dashboard/repository"
	"leadflow_backend/platform/logger"
)

// AdminStats is the workspace-wide dashboard.
type AdminStats struct {
	TotalLeads       int
	TotalValue       float64
	WonRevenue       float64
	ConversionRate   float64
	AverageScore     float64
	OverdueFollowups int
	StageCounts      []repository.StageCount
}

// RepStats is a rep's dashboard over their assigned leads.
type RepStats struct {
	TotalLeads        int
	PipelineValue     float64
	WonRevenue        float64
	ConversionRate    float64
	FollowupsDueToday int
	StageCounts       []repository.StageCount
}

type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// AdminStats aggregates across every lead in the workspace.
func (s *Service) AdminStats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var won int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalLeads, err = s.repo.CountLeads(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		won, err = s.repo.CountWonLeads(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalValue, err = s.repo.TotalValue(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.WonRevenue, err = s.repo.WonRevenue(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.AverageScore, err = s.repo.AverageScore(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.OverdueFollowups, err = s.repo.CountOverdueFollowups(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.StageCounts, err = s.repo.StageCounts(ctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminStats{}, err
	}

	stats.ConversionRate = conversionRate(won, stats.TotalLeads)
	stats.AverageScore = round2(stats.AverageScore)
	return stats, nil
}

// RepStats aggregates over the leads assigned to one rep.
func (s *Service) RepStats(ctx context.Context, repID uuid.UUID) (RepStats, error) {
	var stats RepStats
	var won int

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalLeads, err = s.repo.CountLeads(ctx, &repID)
		return err
	})
	g.Go(func() (err error) {
		won, err = s.repo.CountWonLeads(ctx, &repID)
		return err
	})
	g.Go(func() (err error) {
		stats.PipelineValue, err = s.repo.PipelineValue(ctx, &repID)
		return err
	})
	g.Go(func() (err error) {
		stats.WonRevenue, err = s.repo.WonRevenue(ctx, &repID)
		return err
	})
	g.Go(func() (err error) {
		stats.FollowupsDueToday, err = s.repo.CountFollowupsDueToday(ctx, repID)
		return err
	})
	g.Go(func() (err error) {
		stats.StageCounts, err = s.repo.StageCounts(ctx, &repID)
		return err
	})
	if err := g.Wait(); err != nil {
		return RepStats{}, err
	}

	stats.ConversionRate = conversionRate(won, stats.TotalLeads)
	return stats, nil
}

// conversionRate is the share of leads won, as a percentage.
func conversionRate(won, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(won) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
