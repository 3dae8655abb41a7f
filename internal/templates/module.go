// Package templates manages reusable email templates and sending them
// to leads, with a per-lead delivery log.
package templates

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/email"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/templates/handler"
	"leadflow_backend/internal/templates/repository"
	"leadflow_backend/internal/templates/service"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, leads service.LeadDirectory, sender email.Sender, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, sender, bus, log)
	return &Module{handler: handler.NewHandler(svc, val)}
}

func (m *Module) Name() string { return "templates" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	templates := ctx.Protected.Group("/templates")
	{
		templates.GET("", m.handler.List)
		templates.GET("/:id", m.handler.GetByID)
	}

	admin := ctx.Admin.Group("/templates")
	{
		admin.POST("", m.handler.Create)
		admin.PATCH("/:id", m.handler.Update)
		admin.DELETE("/:id", m.handler.Delete)
	}

	ctx.Protected.POST("/leads/:id/email", m.handler.SendToLead)
	ctx.Protected.GET("/leads/:id/emails", m.handler.ListLogsByLead)
}
