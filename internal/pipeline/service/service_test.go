package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

type fakeRepo struct {
	stages []repository.Stage

	created     *repository.CreateParams
	updated     *repository.UpdateParams
	leadsInUse  int
	deletedID   uuid.UUID
	reorderedTo []uuid.UUID
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Stage, error) {
	f.created = &params
	return repository.Stage{
		ID:                 uuid.New(),
		Name:               params.Name,
		StageOrder:         params.StageOrder,
		DefaultProbability: params.DefaultProbability,
		IsWon:              params.IsWon,
		IsLost:             params.IsLost,
	}, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Stage, error) {
	for _, st := range f.stages {
		if st.ID == id {
			return st, nil
		}
	}
	return repository.Stage{}, apperr.NotFound("pipeline stage not found")
}

func (f *fakeRepo) GetByName(_ context.Context, name string) (repository.Stage, error) {
	for _, st := range f.stages {
		if st.Name == name {
			return st, nil
		}
	}
	return repository.Stage{}, apperr.NotFound("pipeline stage not found")
}

func (f *fakeRepo) List(context.Context) ([]repository.Stage, error) {
	return f.stages, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, params repository.UpdateParams) (repository.Stage, error) {
	f.updated = &params
	st, err := f.GetByID(context.Background(), id)
	if err != nil {
		return repository.Stage{}, err
	}
	if params.IsWon != nil {
		st.IsWon = *params.IsWon
	}
	if params.IsLost != nil {
		st.IsLost = *params.IsLost
	}
	return st, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return nil
}

func (f *fakeRepo) Reorder(_ context.Context, stageIDs []uuid.UUID) error {
	f.reorderedTo = stageIDs
	return nil
}

func (f *fakeRepo) CountLeadsInStage(context.Context, uuid.UUID) (int, error) {
	return f.leadsInUse, nil
}

func TestCreateAppendsWhenOrderZero(t *testing.T) {
	repo := &fakeRepo{stages: []repository.Stage{
		{ID: uuid.New(), Name: "New", StageOrder: 1},
		{ID: uuid.New(), Name: "Won", StageOrder: 2, IsWon: true},
	}}
	svc := New(repo, logger.New("test"))

	st, err := svc.Create(context.Background(), repository.CreateParams{Name: "Negotiation"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if st.StageOrder != 3 {
		t.Fatalf("StageOrder = %d, want 3", st.StageOrder)
	}
}

func TestCreateCarriesOutcomeFlags(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, logger.New("test"))

	st, err := svc.Create(context.Background(), repository.CreateParams{
		Name:               "Closed",
		StageOrder:         5,
		DefaultProbability: 100,
		IsWon:              true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !st.IsWon || st.IsLost {
		t.Fatalf("flags = won %v lost %v, want won true lost false", st.IsWon, st.IsLost)
	}
	if repo.created == nil || !repo.created.IsWon {
		t.Fatal("IsWon was not passed through to the repository")
	}
}

func TestCreateRejectsWonAndLost(t *testing.T) {
	svc := New(&fakeRepo{}, logger.New("test"))

	_, err := svc.Create(context.Background(), repository.CreateParams{
		Name: "Broken", StageOrder: 1, IsWon: true, IsLost: true,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestUpdateRejectsWonAndLost(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{stages: []repository.Stage{{ID: id, Name: "Won", IsWon: true}}}
	svc := New(repo, logger.New("test"))

	yes := true
	_, err := svc.Update(context.Background(), id, repository.UpdateParams{IsWon: &yes, IsLost: &yes})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Update() error = %v, want validation error", err)
	}
}

func TestUpdateRenameKeepsOutcomeFlag(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{stages: []repository.Stage{{ID: id, Name: "Won", IsWon: true}}}
	svc := New(repo, logger.New("test"))

	name := "Closed Won"
	st, err := svc.Update(context.Background(), id, repository.UpdateParams{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !st.IsWon {
		t.Fatal("rename cleared the won flag")
	}
	if repo.updated.IsWon != nil {
		t.Fatal("rename should not touch the won flag")
	}
}

func TestDeleteRefusesOccupiedStage(t *testing.T) {
	repo := &fakeRepo{leadsInUse: 2}
	svc := New(repo, logger.New("test"))

	err := svc.Delete(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("Delete() error = %v, want conflict", err)
	}
	if repo.deletedID != uuid.Nil {
		t.Fatal("Delete reached the repository despite leads in the stage")
	}
}

func TestReorderRequiresEveryStage(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	repo := &fakeRepo{stages: []repository.Stage{{ID: a}, {ID: b}}}
	svc := New(repo, logger.New("test"))

	if _, err := svc.Reorder(context.Background(), []uuid.UUID{a}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Reorder(missing stage) error = %v, want validation error", err)
	}
	if _, err := svc.Reorder(context.Background(), []uuid.UUID{a, a}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Reorder(duplicate stage) error = %v, want validation error", err)
	}
}
