package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/pipeline/repository"
	"leadflow_backend/internal/pipeline/service"
	"leadflow_backend/internal/pipeline/transport"
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

func (h *Handler) List(c *gin.Context) {
	stages, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.StageResponse, 0, len(stages))
	for _, st := range stages {
		out = append(out, toResponse(st))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
		return
	}

	stage, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponse(stage))
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	stage, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		Name:               req.Name,
		StageOrder:         req.StageOrder,
		DefaultProbability: req.DefaultProbability,
		IsWon:              req.IsWon,
		IsLost:             req.IsLost,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, toResponse(stage))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
		return
	}

	var req transport.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	stage, err := h.svc.Update(c.Request.Context(), id, repository.UpdateParams{
		Name:               req.Name,
		DefaultProbability: req.DefaultProbability,
		IsWon:              req.IsWon,
		IsLost:             req.IsLost,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, toResponse(stage))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

func (h *Handler) Reorder(c *gin.Context) {
	var req transport.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.StageIDs))
	for _, raw := range req.StageIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
			return
		}
		ids = append(ids, id)
	}

	stages, err := h.svc.Reorder(c.Request.Context(), ids)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.StageResponse, 0, len(stages))
	for _, st := range stages {
		out = append(out, toResponse(st))
	}
	httpkit.OK(c, out)
}

func toResponse(st repository.Stage) transport.StageResponse {
	return transport.StageResponse{
		ID:                 st.ID.String(),
		Name:               st.Name,
		StageOrder:         st.StageOrder,
		DefaultProbability: st.DefaultProbability,
		IsWon:              st.IsWon,
		IsLost:             st.IsLost,
		CreatedAt:          st.CreatedAt,
		UpdatedAt:          st.UpdatedAt,
	}
}
