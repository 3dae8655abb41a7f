package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	pipelinerepo "leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

type fakeRepo struct {
	leads map[uuid.UUID]repository.Lead

	listFilters *repository.ListFilters
	listAllWith *uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[uuid.UUID]repository.Lead)}
}

func (f *fakeRepo) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (f *fakeRepo) InsertBatch(context.Context, []importer.NewLead) error { return nil }

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID:            uuid.New(),
		Name:          params.Name,
		Email:         params.Email,
		AssignedRepID: params.AssignedRepID,
		CreatedBy:     params.CreatedBy,
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) List(_ context.Context, filters repository.ListFilters) ([]repository.Lead, int, error) {
	f.listFilters = &filters
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, _ repository.UpdateParams) (repository.Lead, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.leads, id)
	return nil
}

func (f *fakeRepo) UpdateStage(_ context.Context, id uuid.UUID, _ uuid.UUID, _ int, _ string) (repository.Lead, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) Assign(_ context.Context, id uuid.UUID, repID *uuid.UUID) (repository.Lead, error) {
	lead, err := f.GetByID(context.Background(), id)
	if err != nil {
		return repository.Lead{}, err
	}
	lead.AssignedRepID = repID
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) ListAll(_ context.Context, visibleTo *uuid.UUID) ([]repository.Lead, error) {
	f.listAllWith = visibleTo
	return nil, nil
}

type fakeStages struct{}

func (fakeStages) GetByID(context.Context, uuid.UUID) (pipelinerepo.Stage, error) {
	return pipelinerepo.Stage{}, apperr.NotFound("pipeline stage not found")
}

func (fakeStages) List(context.Context) ([]pipelinerepo.Stage, error) { return nil, nil }

type noopArchiver struct{}

func (noopArchiver) Archive(context.Context, string, []byte) error { return nil }

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	return New(repo, fakeStages{}, scoring.NewDefault(), noopArchiver{}, events.NewInMemoryBus(log), log)
}

func TestListScopesRepToVisibleLeads(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rep := Actor{ID: uuid.New()}

	other := uuid.New()
	if _, _, err := svc.List(context.Background(), rep, repository.ListFilters{AssignedRepID: &other}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if repo.listFilters.VisibleTo == nil || *repo.listFilters.VisibleTo != rep.ID {
		t.Fatalf("VisibleTo = %v, want %s", repo.listFilters.VisibleTo, rep.ID)
	}
	if repo.listFilters.AssignedRepID != nil {
		t.Fatal("rep-supplied assignment filter should be discarded")
	}
}

func TestListKeepsAdminRepFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	admin := Actor{ID: uuid.New(), Admin: true}

	repID := uuid.New()
	if _, _, err := svc.List(context.Background(), admin, repository.ListFilters{AssignedRepID: &repID}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if repo.listFilters.VisibleTo != nil {
		t.Fatal("admin listing should not be visibility-scoped")
	}
	if repo.listFilters.AssignedRepID == nil || *repo.listFilters.AssignedRepID != repID {
		t.Fatalf("AssignedRepID = %v, want %s", repo.listFilters.AssignedRepID, repID)
	}
}

func TestExportScopesRepVisibility(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	rep := Actor{ID: uuid.New()}

	if _, err := svc.Export(context.Background(), rep); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if repo.listAllWith == nil || *repo.listAllWith != rep.ID {
		t.Fatalf("export scope = %v, want %s", repo.listAllWith, rep.ID)
	}

	if _, err := svc.Export(context.Background(), Actor{ID: uuid.New(), Admin: true}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if repo.listAllWith != nil {
		t.Fatal("admin export should not be scoped")
	}
}

func TestGetByIDAllowsCreatorAfterReassignment(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	creator := Actor{ID: uuid.New()}
	otherRep := uuid.New()

	lead := repository.Lead{
		ID:            uuid.New(),
		Name:          "Jane",
		AssignedRepID: &otherRep,
		CreatedBy:     &creator.ID,
	}
	repo.leads[lead.ID] = lead

	if _, err := svc.GetByID(context.Background(), creator, lead.ID); err != nil {
		t.Fatalf("GetByID() by creator error = %v", err)
	}

	stranger := Actor{ID: uuid.New()}
	if _, err := svc.GetByID(context.Background(), stranger, lead.ID); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("GetByID() by stranger error = %v, want forbidden", err)
	}
}
