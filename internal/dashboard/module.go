// Package dashboard serves aggregate statistics: a workspace view for
// admins and a personal view for reps.
package dashboard

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/dashboard/handler"
	"leadflow_backend/internal/dashboard/repository"
	"leadflow_backend/internal/dashboard/service"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/logger"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), log)
	return &Module{handler: handler.NewHandler(svc)}
}

func (m *Module) Name() string { return "dashboard" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard", m.handler.Stats)
}
