package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type leadEmailData struct {
	Subject string
	Body    template.HTML
}

type followupReminderData struct {
	RepName    string
	LeadName   string
	LeadEmail  string
	Note       string
	FollowupAt string
}

func renderEmailTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
