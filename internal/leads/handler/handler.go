package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/leads/repository"
	"leadflow_backend/internal/leads/service"
	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/httpkit"
	"leadflow_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"

	// 10 MB is generous for a CSV upload.
	maxImportSize = 10 << 20
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	statusID, err := parseOptionalUUID(req.StatusID, "invalid status id")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	repID, err := parseOptionalUUID(req.AssignedRepID, "invalid rep id")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), actor(c), service.CreateParams{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Location:      req.Location,
		Source:        req.Source,
		StatusID:      statusID,
		ExpectedValue: req.ExpectedValue,
		AssignedRepID: repID,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.Created(c, ToResponse(lead))
}

func (h *Handler) List(c *gin.Context) {
	filters := repository.ListFilters{
		Search: c.Query("search"),
		Source: c.Query("source"),
	}
	if raw := c.Query("stageId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
			return
		}
		filters.StatusID = &id
	}
	if raw := c.Query("repId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("invalid rep id"))
			return
		}
		filters.AssignedRepID = &id
	}
	if raw := c.Query("createdFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("createdFrom must be RFC 3339"))
			return
		}
		filters.CreatedFrom = &from
	}
	if raw := c.Query("createdTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpkit.HandleError(c, apperr.BadRequest("createdTo must be RFC 3339"))
			return
		}
		filters.CreatedTo = &to
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filters.Offset = n
		}
	}

	leads, total, err := h.svc.List(c.Request.Context(), actor(c), filters)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := transport.LeadListResponse{Leads: make([]transport.LeadResponse, 0, len(leads)), Total: total}
	for _, lead := range leads {
		out.Leads = append(out.Leads, ToResponse(lead))
	}
	httpkit.OK(c, out)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), actor(c), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(lead))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), actor(c), id, service.UpdateParams{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Location:      req.Location,
		Source:        req.Source,
		ExpectedValue: req.ExpectedValue,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(lead))
}

func (h *Handler) MoveStage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	var req transport.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	stageID, err := uuid.Parse(req.StageID)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid stage id"))
		return
	}

	lead, err := h.svc.MoveStage(c.Request.Context(), actor(c), id, stageID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(lead))
}

func (h *Handler) Assign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	repID, err := parseOptionalUUID(req.RepID, "invalid rep id")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	lead, err := h.svc.Assign(c.Request.Context(), actor(c), id, repID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, ToResponse(lead))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid lead id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.NoContent(c)
}

// Import accepts a multipart CSV upload under the "file" field and
// returns the row-by-row outcome summary.
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "no file supplied", nil)
		return
	}
	if fileHeader.Size > maxImportSize {
		httpkit.Error(c, http.StatusBadRequest, "file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}

	summary, err := h.svc.Import(c.Request.Context(), actor(c).ID, fileHeader.Filename, data)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, gin.H{"summary": summary})
}

func actor(c *gin.Context) service.Actor {
	identity := httpkit.MustGetIdentity(c)
	id, _ := uuid.Parse(identity.UserID)
	return service.Actor{ID: id, Admin: identity.IsAdmin()}
}

// ToResponse maps a stored lead to its public view.
func ToResponse(l repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		Location:       l.Location,
		Source:         l.Source,
		StatusID:       uuidString(l.StatusID),
		StatusName:     l.StatusName,
		ExpectedValue:  l.ExpectedValue,
		Score:          l.Score,
		ScoreReason:    l.ScoreReason,
		AssignedRepID:  uuidString(l.AssignedRepID),
		CreatedBy:      uuidString(l.CreatedBy),
		NextFollowupAt: l.NextFollowupAt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseOptionalUUID(raw *string, message string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperr.BadRequest(message)
	}
	return &id, nil
}
