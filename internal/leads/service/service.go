package service

import (
	"bytes"
	"context"

	"github.com/google/uuid"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/importer"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	pipelinerepo "leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"
)

// Actor identifies who is performing an operation. Reps only see leads
// assigned to them or created by them; admins see everything.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// StageProvider is the slice of the pipeline module the leads service
// needs.
type StageProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (pipelinerepo.Stage, error)
	List(ctx context.Context) ([]pipelinerepo.Stage, error)
}

// Archiver stores raw import files for audit. Implementations must be
// safe to call concurrently.
type Archiver interface {
	Archive(ctx context.Context, name string, data []byte) error
}

type Service struct {
	repo       repository.Repository
	stages     StageProvider
	scorer     *scoring.Scorer
	reconciler *importer.Reconciler
	archiver   Archiver
	bus        events.Bus
	log        *logger.Logger
}

func New(repo repository.Repository, stages StageProvider, scorer *scoring.Scorer, archiver Archiver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		stages:     stages,
		scorer:     scorer,
		reconciler: importer.New(repo, scorer),
		archiver:   archiver,
		bus:        bus,
		log:        log,
	}
}

// CreateParams are the caller-supplied fields for a new lead.
type CreateParams struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	Location      string
	Source        string
	StatusID      *uuid.UUID
	ExpectedValue float64
	AssignedRepID *uuid.UUID
}

// Create stores a new lead, scoring it from its attributes. A rep
// creating a lead is automatically assigned to it.
func (s *Service) Create(ctx context.Context, actor Actor, params CreateParams) (repository.Lead, error) {
	if params.StatusID != nil {
		if _, err := s.stages.GetByID(ctx, *params.StatusID); err != nil {
			return repository.Lead{}, err
		}
	}

	assignedRep := params.AssignedRepID
	if !actor.Admin {
		assignedRep = &actor.ID
	}

	result := s.scorer.Score(scoring.Attributes{
		Email:   params.Email,
		Phone:   params.Phone,
		Company: params.Company,
		Source:  params.Source,
	})

	createdBy := actor.ID
	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:          sanitize.StripHTML(params.Name),
		Email:         params.Email,
		Phone:         phone.NormalizeE164(params.Phone),
		Company:       sanitize.StripHTML(params.Company),
		Location:      params.Location,
		Source:        params.Source,
		StatusID:      params.StatusID,
		ExpectedValue: params.ExpectedValue,
		Score:         result.Score,
		ScoreReason:   result.Reason,
		AssignedRepID: assignedRep,
		CreatedBy:     &createdBy,
	})
	if err != nil {
		return repository.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		Name:          lead.Name,
		Email:         lead.Email,
		Source:        lead.Source,
		Score:         lead.Score,
		AssignedRepID: lead.AssignedRepID,
		CreatedBy:     lead.CreatedBy,
	})

	return lead, nil
}

// GetByID returns a lead the actor is allowed to see.
func (s *Service) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, err
	}
	if err := s.checkAccess(actor, lead); err != nil {
		return repository.Lead{}, err
	}
	return lead, nil
}

// List returns leads matching the filters, scoped to the actor's role.
// Reps see leads assigned to them or created by them; the explicit rep
// filter is reserved for admins.
func (s *Service) List(ctx context.Context, actor Actor, filters repository.ListFilters) ([]repository.Lead, int, error) {
	if !actor.Admin {
		filters.VisibleTo = &actor.ID
		filters.AssignedRepID = nil
	}
	return s.repo.List(ctx, filters)
}

// UpdateParams are the caller-supplied lead changes.
type UpdateParams struct {
	Name          *string
	Email         *string
	Phone         *string
	Company       *string
	Location      *string
	Source        *string
	ExpectedValue *float64
}

// Update applies field changes and recomputes the score from the merged
// attributes. The stage contribution is not part of attribute scores;
// it is applied on stage moves.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, params UpdateParams) (repository.Lead, error) {
	current, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return repository.Lead{}, err
	}

	merged := scoring.Attributes{
		Email:   pick(params.Email, current.Email),
		Phone:   pick(params.Phone, current.Phone),
		Company: pick(params.Company, current.Company),
		Source:  pick(params.Source, current.Source),
	}
	result := s.scorer.Score(merged)

	if params.Name != nil {
		clean := sanitize.StripHTML(*params.Name)
		params.Name = &clean
	}
	if params.Company != nil {
		clean := sanitize.StripHTML(*params.Company)
		params.Company = &clean
	}
	if params.Phone != nil {
		normalized := phone.NormalizeE164(*params.Phone)
		params.Phone = &normalized
	}

	return s.repo.Update(ctx, id, repository.UpdateParams{
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		Company:       params.Company,
		Location:      params.Location,
		Source:        params.Source,
		ExpectedValue: params.ExpectedValue,
		Score:         result.Score,
		ScoreReason:   result.Reason,
	})
}

// MoveStage moves a lead to another pipeline stage and rescores it with
// the stage's default probability folded in.
func (s *Service) MoveStage(ctx context.Context, actor Actor, id, stageID uuid.UUID) (repository.Lead, error) {
	current, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return repository.Lead{}, err
	}

	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return repository.Lead{}, err
	}

	result := s.scorer.Score(scoring.Attributes{
		Email:   current.Email,
		Phone:   current.Phone,
		Company: current.Company,
		Source:  current.Source,
		Stage:   scoring.StageByProbability(stage.DefaultProbability),
	})

	lead, err := s.repo.UpdateStage(ctx, id, stageID, result.Score, result.Reason)
	if err != nil {
		return repository.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		FromStage: current.StatusName,
		ToStage:   stage.Name,
		ChangedBy: actor.ID,
	})

	return lead, nil
}

// Assign sets or clears the lead's rep. Admin only.
func (s *Service) Assign(ctx context.Context, actor Actor, id uuid.UUID, repID *uuid.UUID) (repository.Lead, error) {
	if !actor.Admin {
		return repository.Lead{}, apperr.Forbidden("only admins can assign leads")
	}

	lead, err := s.repo.Assign(ctx, id, repID)
	if err != nil {
		return repository.Lead{}, err
	}

	if repID != nil {
		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:  events.NewBaseEvent(),
			LeadID:     lead.ID,
			RepID:      *repID,
			AssignedBy: actor.ID,
		})
	}

	return lead, nil
}

// Delete removes a lead. Admin only.
func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Admin {
		return apperr.Forbidden("only admins can delete leads")
	}
	return s.repo.Delete(ctx, id)
}

// Import runs the CSV reconciler over the uploaded file, archives the
// raw upload for audit, and reports the per-row outcome.
func (s *Service) Import(ctx context.Context, actorID uuid.UUID, filename string, data []byte) (*importer.Summary, error) {
	summary, err := s.reconciler.Import(ctx, bytes.NewReader(data), actorID)
	if err != nil {
		return nil, err
	}

	// The archive is an audit convenience; a storage outage must not
	// fail an import that already persisted.
	if err := s.archiver.Archive(ctx, filename, data); err != nil {
		s.log.Error("import archive failed", "file", filename, "error", err.Error())
	}

	s.bus.Publish(ctx, events.LeadsImported{
		BaseEvent:  events.NewBaseEvent(),
		ImportedBy: actorID,
		Total:      summary.Total,
		Imported:   summary.Imported,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
	})

	return summary, nil
}

// Export returns all leads visible to the actor for CSV download.
func (s *Service) Export(ctx context.Context, actor Actor) ([]repository.Lead, error) {
	if actor.Admin {
		return s.repo.ListAll(ctx, nil)
	}
	return s.repo.ListAll(ctx, &actor.ID)
}

// Board groups the actor's visible leads by pipeline stage in board
// order.
type BoardColumn struct {
	Stage pipelinerepo.Stage
	Leads []repository.Lead
}

func (s *Service) Board(ctx context.Context, actor Actor) ([]BoardColumn, error) {
	stages, err := s.stages.List(ctx)
	if err != nil {
		return nil, err
	}

	var repScope *uuid.UUID
	if !actor.Admin {
		repScope = &actor.ID
	}
	leads, err := s.repo.ListAll(ctx, repScope)
	if err != nil {
		return nil, err
	}

	byStage := make(map[uuid.UUID][]repository.Lead)
	for _, lead := range leads {
		if lead.StatusID != nil {
			byStage[*lead.StatusID] = append(byStage[*lead.StatusID], lead)
		}
	}

	columns := make([]BoardColumn, 0, len(stages))
	for _, stage := range stages {
		column := BoardColumn{Stage: stage, Leads: byStage[stage.ID]}
		if column.Leads == nil {
			column.Leads = []repository.Lead{}
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func (s *Service) checkAccess(actor Actor, lead repository.Lead) error {
	if actor.Admin {
		return nil
	}
	if lead.AssignedRepID != nil && *lead.AssignedRepID == actor.ID {
		return nil
	}
	if lead.CreatedBy != nil && *lead.CreatedBy == actor.ID {
		return nil
	}
	return apperr.Forbidden("lead is not assigned to you")
}

func pick(override *string, current string) string {
	if override != nil {
		return *override
	}
	return current
}
