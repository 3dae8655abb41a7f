// Package followups provides the follow-up bounded context module:
// scheduling future touchpoints on leads, resolving them, and the
// reminder jobs the background worker runs.
package followups

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	"leadflow_backend/internal/followups/handler"
	"leadflow_backend/internal/followups/repository"
	"leadflow_backend/internal/followups/service"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/scheduler"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the follow-ups bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the follow-ups module with all its dependencies.
func NewModule(pool *pgxpool.Pool, leads service.LeadDirectory, reminders scheduler.ReminderScheduler, sender email.Sender, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, reminders, sender, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "followups"
}

// Service returns the service layer; the background worker drives its
// reminder jobs through it.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts follow-up routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/followups")
	group.GET("", m.handler.ListMine)
	group.POST("", m.handler.Create)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
	group.DELETE("/:id", m.handler.Delete)

	ctx.Protected.GET("/leads/:id/followups", m.handler.ListByLead)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
