// Package handler exposes the lead activity timeline over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/activities/repository"
	"leadflow_backend/internal/activities/service"
	"leadflow_backend/internal/activities/transport"
	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func NewHandler(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	activity, err := h.svc.Log(c.Request.Context(), actor(c), leadID, req.ActivityType, req.Description)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, ToResponse(activity))
}

func (h *Handler) ListByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	activities, err := h.svc.ListByLead(c.Request.Context(), actor(c), leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, ToResponse(a))
	}
	httpkit.OK(c, out)
}

func ToResponse(a repository.Activity) transport.ActivityResponse {
	var userID *string
	if a.UserID != nil {
		s := a.UserID.String()
		userID = &s
	}
	return transport.ActivityResponse{
		ID:           a.ID.String(),
		LeadID:       a.LeadID.String(),
		UserID:       userID,
		ActivityType: a.ActivityType,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
	}
}

func actor(c *gin.Context) leadssvc.Actor {
	identity := httpkit.MustGetIdentity(c)
	id, _ := uuid.Parse(identity.UserID)
	return leadssvc.Actor{ID: id, Admin: identity.IsAdmin()}
}
