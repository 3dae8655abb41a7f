// Package transport defines request and response DTOs for email templates.
package transport

// CreateTemplateRequest creates a reusable email template. Subject and
// body may contain placeholders like {{name}} or {{company}} that are
// filled from the lead when the template is sent.
type CreateTemplateRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Subject string `json:"subject" validate:"required,max=255"`
	Body    string `json:"body" validate:"required,max=20000"`
}

// UpdateTemplateRequest partially updates a template.
type UpdateTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=120"`
	Subject *string `json:"subject" validate:"omitempty,max=255"`
	Body    *string `json:"body" validate:"omitempty,max=20000"`
}

// SendEmailRequest sends a rendered template to a lead's email address.
type SendEmailRequest struct {
	TemplateID string `json:"templateId" validate:"required,uuid"`
}

// TemplateResponse is the public view of an email template.
type TemplateResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Subject   string  `json:"subject"`
	Body      string  `json:"body"`
	CreatedBy *string `json:"createdBy"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// EmailLogResponse is one entry in a lead's outbound mail history.
type EmailLogResponse struct {
	ID         string  `json:"id"`
	LeadID     string  `json:"leadId"`
	TemplateID *string `json:"templateId"`
	SentBy     *string `json:"sentBy"`
	Recipient  string  `json:"recipient"`
	Subject    string  `json:"subject"`
	Status     string  `json:"status"`
	SentAt     string  `json:"sentAt"`
}
