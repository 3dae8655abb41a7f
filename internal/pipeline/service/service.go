package service

import (
	"context"

	"github.com/google/uuid"

	"leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create adds a stage. A zero StageOrder appends the stage to the end.
// A stage cannot be both won and lost.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Stage, error) {
	if params.IsWon && params.IsLost {
		return repository.Stage{}, apperr.Validation("a stage cannot be both won and lost")
	}
	if params.StageOrder == 0 {
		stages, err := s.repo.List(ctx)
		if err != nil {
			return repository.Stage{}, err
		}
		for _, st := range stages {
			if st.StageOrder >= params.StageOrder {
				params.StageOrder = st.StageOrder + 1
			}
		}
		if params.StageOrder == 0 {
			params.StageOrder = 1
		}
	}
	return s.repo.Create(ctx, params)
}

// GetByID returns a stage.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Stage, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all stages in board order.
func (s *Service) List(ctx context.Context) ([]repository.Stage, error) {
	return s.repo.List(ctx)
}

// Update changes a stage's name, probability, or outcome flags.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Stage, error) {
	if params.IsWon != nil && params.IsLost != nil && *params.IsWon && *params.IsLost {
		return repository.Stage{}, apperr.Validation("a stage cannot be both won and lost")
	}
	return s.repo.Update(ctx, id, params)
}

// Delete removes a stage, refusing while leads still occupy it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.CountLeadsInStage(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("stage still has leads assigned")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("stage deleted", "stage_id", id.String())
	return nil
}

// Reorder replaces the board ordering with the given sequence.
func (s *Service) Reorder(ctx context.Context, stageIDs []uuid.UUID) ([]repository.Stage, error) {
	stages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(stageIDs) != len(stages) {
		return nil, apperr.Validation("reorder must include every stage exactly once")
	}

	seen := make(map[uuid.UUID]struct{}, len(stageIDs))
	for _, id := range stageIDs {
		if _, dup := seen[id]; dup {
			return nil, apperr.Validation("reorder must include every stage exactly once")
		}
		seen[id] = struct{}{}
	}

	if err := s.repo.Reorder(ctx, stageIDs); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
