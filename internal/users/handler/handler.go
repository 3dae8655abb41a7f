package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/users/repository"
	"leadflow_backend/internal/users/service"
	"leadflow_backend/internal/users/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, toResponse(user))
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	httpkit.OK(c, out)
}

func (h *Handler) ListReps(c *gin.Context) {
	users, err := h.svc.ListReps(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid user id"))
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponse(user))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid user id"))
		return
	}

	var req transport.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	actorID, err := uuid.Parse(httpkit.MustGetIdentity(c).UserID)
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "invalid token subject", nil)
		return
	}

	user, err := h.svc.Update(c.Request.Context(), actorID, id, repository.UpdateParams{
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponse(user))
}

func toResponse(u repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
