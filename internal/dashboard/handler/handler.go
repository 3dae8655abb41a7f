// Package handler exposes the dashboards over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadflow_backend/internal/dashboard/repository"
	"leadflow_backend/internal/dashboard/service"
	"leadflow_backend/internal/dashboard/transport"
	"leadflow_backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Stats serves the dashboard matching the caller's role: admins get
// the workspace view, reps get their personal view.
func (h *Handler) Stats(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	if identity.IsAdmin() {
		stats, err := h.svc.AdminStats(c.Request.Context())
		if err != nil {
			httpkit.HandleError(c, err)
			return
		}
		httpkit.OK(c, toAdminResponse(stats))
		return
	}

	repID, _ := uuid.Parse(identity.UserID)
	stats, err := h.svc.RepStats(c.Request.Context(), repID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, toRepResponse(stats))
}

func toAdminResponse(stats service.AdminStats) transport.AdminStatsResponse {
	return transport.AdminStatsResponse{
		TotalLeads:       stats.TotalLeads,
		TotalValue:       stats.TotalValue,
		WonRevenue:       stats.WonRevenue,
		ConversionRate:   stats.ConversionRate,
		AverageScore:     stats.AverageScore,
		OverdueFollowups: stats.OverdueFollowups,
		StageCounts:      toStageCounts(stats.StageCounts),
	}
}

func toRepResponse(stats service.RepStats) transport.RepStatsResponse {
	return transport.RepStatsResponse{
		TotalLeads:        stats.TotalLeads,
		PipelineValue:     stats.PipelineValue,
		WonRevenue:        stats.WonRevenue,
		ConversionRate:    stats.ConversionRate,
		FollowupsDueToday: stats.FollowupsDueToday,
		StageCounts:       toStageCounts(stats.StageCounts),
	}
}

func toStageCounts(counts []repository.StageCount) []transport.StageCountResponse {
	out := make([]transport.StageCountResponse, 0, len(counts))
	for _, sc := range counts {
		out = append(out, transport.StageCountResponse{
			StageID:   sc.StageID.String(),
			StageName: sc.StageName,
			Count:     sc.Count,
		})
	}
	return out
}
