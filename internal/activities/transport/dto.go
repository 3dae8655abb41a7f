// Package transport defines request and response DTOs for lead activities.
package transport

// CreateActivityRequest logs a manual timeline entry on a lead.
type CreateActivityRequest struct {
	LeadID       string `json:"leadId" validate:"required,uuid"`
	ActivityType string `json:"activityType" validate:"required,oneof=note call email meeting"`
	Description  string `json:"description" validate:"required,max=4000"`
}

// ActivityResponse is the public view of a timeline entry.
type ActivityResponse struct {
	ID           string  `json:"id"`
	LeadID       string  `json:"leadId"`
	UserID       *string `json:"userId"`
	ActivityType string  `json:"activityType"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"createdAt"`
}
