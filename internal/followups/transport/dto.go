// Package transport defines request and response DTOs for follow-ups.
package transport

// CreateFollowupRequest schedules a follow-up on a lead.
type CreateFollowupRequest struct {
	LeadID     string `json:"leadId" validate:"required,uuid"`
	FollowupAt string `json:"followupAt" validate:"required"`
	Note       string `json:"note" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest resolves a follow-up.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending done missed"`
}

// FollowupResponse is the public view of a follow-up.
type FollowupResponse struct {
	ID            string  `json:"id"`
	LeadID        string  `json:"leadId"`
	LeadName      string  `json:"leadName,omitempty"`
	AssignedRepID *string `json:"assignedRepId"`
	FollowupAt    string  `json:"followupAt"`
	Note          string  `json:"note,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
