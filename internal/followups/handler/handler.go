package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/followups/repository"
	"leadflow_backend/internal/followups/service"
	"leadflow_backend/internal/followups/transport"
	leadssvc "leadflow_backend/internal/leads/service"
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
	var req transport.CreateFollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}
	followupAt, err := time.Parse(time.RFC3339, req.FollowupAt)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("followupAt must be RFC 3339"))
		return
	}

	followup, err := h.svc.Create(c.Request.Context(), actor(c), leadID, followupAt, req.Note)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, toResponse(followup))
}

func (h *Handler) ListByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	followups, err := h.svc.ListByLead(c.Request.Context(), actor(c), leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponses(followups))
}

func (h *Handler) ListMine(c *gin.Context) {
	followups, err := h.svc.ListMine(c.Request.Context(), actor(c), c.Query("due"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponses(followups))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid follow-up id"))
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	followup, err := h.svc.UpdateStatus(c.Request.Context(), actor(c), id, req.Status)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponse(followup))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid follow-up id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

func actor(c *gin.Context) leadssvc.Actor {
	identity := httpkit.MustGetIdentity(c)
	id, _ := uuid.Parse(identity.UserID)
	return leadssvc.Actor{ID: id, Admin: identity.IsAdmin()}
}

func toResponse(f repository.Followup) transport.FollowupResponse {
	var repID *string
	if f.AssignedRepID != nil {
		s := f.AssignedRepID.String()
		repID = &s
	}
	return transport.FollowupResponse{
		ID:            f.ID.String(),
		LeadID:        f.LeadID.String(),
		LeadName:      f.LeadName,
		AssignedRepID: repID,
		FollowupAt:    f.FollowupAt.Format(time.RFC3339),
		Note:          f.Note,
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func toResponses(followups []repository.Followup) []transport.FollowupResponse {
	out := make([]transport.FollowupResponse, 0, len(followups))
	for _, f := range followups {
		out = append(out, toResponse(f))
	}
	return out
}
