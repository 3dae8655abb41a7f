// Package auth provides the authentication bounded context module:
// sign-up, sign-in, refresh-token rotation, password changes, and the
// current-user view.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflow_backend/internal/auth/handler"
	"leadflow_backend/internal/auth/repository"
	"leadflow_backend/internal/auth/service"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.JWTConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/auth")
	group.Use(ctx.AuthRateLimiter.Middleware())
	group.POST("/sign-up", m.handler.SignUp)
	group.POST("/sign-in", m.handler.SignIn)
	group.POST("/refresh", m.handler.Refresh)
	group.POST("/sign-out", m.handler.SignOut)

	ctx.Protected.GET("/auth/me", m.handler.GetMe)
	ctx.Protected.POST("/auth/change-password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
