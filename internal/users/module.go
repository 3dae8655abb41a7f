// Package users provides the user management bounded context module.
// Admins provision and manage accounts; reps are listed for lead
// assignment pickers.
package users

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/users/handler"
	"leadflow_backend/internal/users/repository"
	"leadflow_backend/internal/users/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the users module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts user management routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/users/reps", m.handler.ListReps)

	adminGroup := ctx.Admin.Group("/users")
	adminGroup.GET("", m.handler.List)
	adminGroup.POST("", m.handler.Create)
	adminGroup.GET("/:id", m.handler.GetByID)
	adminGroup.PATCH("/:id", m.handler.Update)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
