// Package transport defines request and response DTOs for pipeline stages.
package transport

// CreateStageRequest adds a pipeline stage.
type CreateStageRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=60"`
	StageOrder         int    `json:"stageOrder" validate:"gte=0"`
	DefaultProbability int    `json:"defaultProbability" validate:"gte=0,lte=100"`
	IsWon              bool   `json:"isWon"`
	IsLost             bool   `json:"isLost"`
}

// UpdateStageRequest changes a stage's name, probability, or outcome flags.
type UpdateStageRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=2,max=60"`
	DefaultProbability *int    `json:"defaultProbability" validate:"omitempty,gte=0,lte=100"`
	IsWon              *bool   `json:"isWon"`
	IsLost             *bool   `json:"isLost"`
}

// ReorderRequest replaces the stage ordering. StageIDs lists every
// stage in its new position.
type ReorderRequest struct {
	StageIDs []string `json:"stageIds" validate:"required,min=1,dive,uuid"`
}

// StageResponse is the public view of a pipeline stage.
type StageResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	StageOrder         int    `json:"stageOrder"`
	DefaultProbability int    `json:"defaultProbability"`
	IsWon              bool   `json:"isWon"`
	IsLost             bool   `json:"isLost"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}
