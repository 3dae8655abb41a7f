// Package handler exposes email templates and lead email sending over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	leadssvc "leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/templates/repository"
	"leadflow_backend/internal/templates/service"
	"leadflow_backend/internal/templates/transport"
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
	var req transport.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	tpl, err := h.svc.Create(c.Request.Context(), actor(c).ID, req.Name, req.Subject, req.Body)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, ToResponse(tpl))
}

func (h *Handler) List(c *gin.Context) {
	templates, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, ToResponse(tpl))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid template id", nil)
		return
	}

	tpl, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(tpl))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid template id", nil)
		return
	}

	var req transport.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	tpl, err := h.svc.Update(c.Request.Context(), id, repository.UpdateParams{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(tpl))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid template id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) SendToLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	var req transport.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid template id", nil)
		return
	}

	entry, err := h.svc.SendToLead(c.Request.Context(), actor(c), leadID, templateID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToLogResponse(entry))
}

func (h *Handler) ListLogsByLead(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid lead id", nil)
		return
	}

	logs, err := h.svc.ListLogsByLead(c.Request.Context(), actor(c), leadID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.EmailLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, ToLogResponse(l))
	}
	httpkit.OK(c, out)
}

func ToResponse(tpl repository.Template) transport.TemplateResponse {
	return transport.TemplateResponse{
		ID:        tpl.ID.String(),
		Name:      tpl.Name,
		Subject:   tpl.Subject,
		Body:      tpl.Body,
		CreatedBy: uuidString(tpl.CreatedBy),
		CreatedAt: tpl.CreatedAt,
		UpdatedAt: tpl.UpdatedAt,
	}
}

func ToLogResponse(l repository.EmailLog) transport.EmailLogResponse {
	return transport.EmailLogResponse{
		ID:         l.ID.String(),
		LeadID:     l.LeadID.String(),
		TemplateID: uuidString(l.TemplateID),
		SentBy:     uuidString(l.SentBy),
		Recipient:  l.Recipient,
		Subject:    l.Subject,
		Status:     l.Status,
		SentAt:     l.SentAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func actor(c *gin.Context) leadssvc.Actor {
	identity := httpkit.MustGetIdentity(c)
	id, _ := uuid.Parse(identity.UserID)
	return leadssvc.Actor{ID: id, Admin: identity.IsAdmin()}
}
