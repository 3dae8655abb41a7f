// Package leads provides the leads bounded context module: CRUD, the
// kanban board, stage moves with rescoring, CSV import and export.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/leads/handler"
	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, stages service.StageProvider, archiver service.Archiver, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, stages, scoring.NewDefault(), archiver, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/board", m.handler.Board)
	group.GET("/export", m.handler.Export)
	group.GET("/:id", m.handler.GetByID)
	group.PATCH("/:id", m.handler.Update)
	group.PUT("/:id/stage", m.handler.MoveStage)
	group.PUT("/:id/assign", m.handler.Assign)
	group.DELETE("/:id", m.handler.Delete)

	ctx.Admin.POST("/leads/import", m.handler.Import)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
