// Package transport defines request and response DTOs for the leads module.
package transport

// CreateLeadRequest captures a new lead.
type CreateLeadRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"omitempty,max=40"`
	Company       string  `json:"company" validate:"omitempty,max=200"`
	Location      string  `json:"location" validate:"omitempty,max=200"`
	Source        string  `json:"source" validate:"omitempty,max=60"`
	StatusID      *string `json:"statusId" validate:"omitempty,uuid"`
	ExpectedValue float64 `json:"expectedValue" validate:"gte=0"`
	AssignedRepID *string `json:"assignedRepId" validate:"omitempty,uuid"`
}

// UpdateLeadRequest changes lead fields; omitted fields are untouched.
type UpdateLeadRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Phone         *string  `json:"phone" validate:"omitempty,max=40"`
	Company       *string  `json:"company" validate:"omitempty,max=200"`
	Location      *string  `json:"location" validate:"omitempty,max=200"`
	Source        *string  `json:"source" validate:"omitempty,max=60"`
	ExpectedValue *float64 `json:"expectedValue" validate:"omitempty,gte=0"`
}

// MoveStageRequest moves a lead to another pipeline stage.
type MoveStageRequest struct {
	StageID string `json:"stageId" validate:"required,uuid"`
}

// AssignRequest sets or clears the lead's rep. A null repId unassigns.
type AssignRequest struct {
	RepID *string `json:"repId" validate:"omitempty,uuid"`
}

// LeadResponse is the public view of a lead.
type LeadResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Company        string  `json:"company,omitempty"`
	Location       string  `json:"location,omitempty"`
	Source         string  `json:"source,omitempty"`
	StatusID       *string `json:"statusId"`
	StatusName     string  `json:"statusName,omitempty"`
	ExpectedValue  float64 `json:"expectedValue"`
	Score          int     `json:"score"`
	ScoreReason    string  `json:"scoreReason"`
	AssignedRepID  *string `json:"assignedRepId"`
	CreatedBy      *string `json:"createdBy"`
	NextFollowupAt *string `json:"nextFollowupAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// LeadListResponse is a paginated lead listing.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

// BoardColumn is one stage with its leads, for the kanban view.
type BoardColumn struct {
	StageID            string         `json:"stageId"`
	StageName          string         `json:"stageName"`
	StageOrder         int            `json:"stageOrder"`
	DefaultProbability int            `json:"defaultProbability"`
	Leads              []LeadResponse `json:"leads"`
}
