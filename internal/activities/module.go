// Package activities records an immutable timeline of what happened on
// each lead, from manual notes to system entries written off domain events.
package activities

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/activities/handler"
	"leadflow_backend/internal/activities/repository"
	"leadflow_backend/internal/activities/service"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, leads service.LeadDirectory, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, log)
	return &Module{
		handler: handler.NewHandler(svc, val),
		service: svc,
	}
}

func (m *Module) Name() string { return "activities" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/activities", m.handler.Create)
	ctx.Protected.GET("/leads/:id/activities", m.handler.ListByLead)
}

// RegisterHandlers subscribes the module to the domain events it turns
// into system timeline entries.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(m.service.HandleEvent))
	bus.Subscribe(events.LeadStageChanged{}.EventName(), events.HandlerFunc(m.service.HandleEvent))
	bus.Subscribe(events.LeadAssigned{}.EventName(), events.HandlerFunc(m.service.HandleEvent))
	bus.Subscribe(events.LeadEmailSent{}.EventName(), events.HandlerFunc(m.service.HandleEvent))
}
