package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"leadflow_backend/internal/leads/transport"
	"leadflow_backend/platform/httpkit"
)

// Export streams the actor's visible leads as a CSV download. The
// column set mirrors the import header so an export round-trips.
func (h *Handler) Export(c *gin.Context) {
	leads, err := h.svc.Export(c.Request.Context(), actor(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"name", "email", "phone", "company", "location", "source", "expected_value", "status", "score", "score_reason"})
	for _, lead := range leads {
		_ = w.Write([]string{
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Company,
			lead.Location,
			lead.Source,
			strconv.FormatFloat(lead.ExpectedValue, 'f', 2, 64),
			lead.StatusName,
			strconv.Itoa(lead.Score),
			lead.ScoreReason,
		})
	}
	w.Flush()
}

// Board returns the kanban view: every stage in order with its leads.
func (h *Handler) Board(c *gin.Context) {
	columns, err := h.svc.Board(c.Request.Context(), actor(c))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]transport.BoardColumn, 0, len(columns))
	for _, col := range columns {
		leads := make([]transport.LeadResponse, 0, len(col.Leads))
		for _, lead := range col.Leads {
			leads = append(leads, ToResponse(lead))
		}
		out = append(out, transport.BoardColumn{
			StageID:            col.Stage.ID.String(),
			StageName:          col.Stage.Name,
			StageOrder:         col.Stage.StageOrder,
			DefaultProbability: col.Stage.DefaultProbability,
			Leads:              leads,
		})
	}
	httpkit.OK(c, out)
}
