package service

import (
	"context"

	"github.com/google/uuid"

	"leadflow_backend/internal/auth/password"
	"leadflow_backend/internal/users/repository"
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

// Create provisions an account with the given role.
func (s *Service) Create(ctx context.Context, email, plainPassword, fullName, role string) (repository.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, err
	}

	user, err := s.repo.Create(ctx, email, hash, fullName, role)
	if err != nil {
		return repository.User{}, err
	}

	s.log.Info("user created", "user_id", user.ID.String(), "role", user.Role)
	return user, nil
}

// GetByID returns an account.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]repository.User, error) {
	return s.repo.List(ctx)
}

// ListReps returns active reps, used by lead assignment pickers.
func (s *Service) ListReps(ctx context.Context) ([]repository.User, error) {
	return s.repo.ListReps(ctx)
}

// Update applies account changes. An admin cannot deactivate or demote
// their own account, which would lock the instance out.
func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, params repository.UpdateParams) (repository.User, error) {
	if actorID == id {
		if params.IsActive != nil && !*params.IsActive {
			return repository.User{}, apperr.Validation("cannot deactivate your own account")
		}
		if params.Role != nil && *params.Role != "admin" {
			return repository.User{}, apperr.Validation("cannot change your own role")
		}
	}

	return s.repo.Update(ctx, id, params)
}
