// Package transport defines response DTOs for the dashboards.
package transport

// AdminStatsResponse is the workspace-wide dashboard.
type AdminStatsResponse struct {
	TotalLeads       int                  `json:"totalLeads"`
	TotalValue       float64              `json:"totalValue"`
	WonRevenue       float64              `json:"wonRevenue"`
	ConversionRate   float64              `json:"conversionRate"`
	AverageScore     float64              `json:"averageScore"`
	OverdueFollowups int                  `json:"overdueFollowups"`
	StageCounts      []StageCountResponse `json:"stageCounts"`
}

// RepStatsResponse is a rep's personal dashboard over their assigned leads.
type RepStatsResponse struct {
	TotalLeads        int                  `json:"totalLeads"`
	PipelineValue     float64              `json:"pipelineValue"`
	WonRevenue        float64              `json:"wonRevenue"`
	ConversionRate    float64              `json:"conversionRate"`
	FollowupsDueToday int                  `json:"followupsDueToday"`
	StageCounts       []StageCountResponse `json:"stageCounts"`
}

// StageCountResponse is one bar of the stage distribution chart.
type StageCountResponse struct {
	StageID   string `json:"stageId"`
	StageName string `json:"stageName"`
	Count     int    `json:"count"`
}
