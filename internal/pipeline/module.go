// Package pipeline provides the pipeline stage bounded context module.
// Stages form the ordered kanban board leads move across.
package pipeline

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/pipeline/handler"
	"leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/internal/pipeline/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the pipeline bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the pipeline module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipeline"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts pipeline stage routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/pipeline/stages", m.handler.List)
	ctx.Protected.GET("/pipeline/stages/:id", m.handler.GetByID)

	adminGroup := ctx.Admin.Group("/pipeline/stages")
	adminGroup.POST("", m.handler.Create)
	adminGroup.PATCH("/:id", m.handler.Update)
	adminGroup.DELETE("/:id", m.handler.Delete)
	adminGroup.PUT("/reorder", m.handler.Reorder)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
