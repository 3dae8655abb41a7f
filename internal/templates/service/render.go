package service

import (
	"fmt"
	"strings"

	leadsrepo "leadflow_backend/internal/leads/repository"
)

// RenderForLead substitutes {{placeholder}} tokens in text with the
// lead's fields. Unknown placeholders are left as-is so a typo is
// visible in the delivered mail instead of silently vanishing.
func RenderForLead(text string, lead leadsrepo.Lead) string {
	replacer := strings.NewReplacer(
		"{{name}}", lead.Name,
		"{{email}}", lead.Email,
		"{{phone}}", lead.Phone,
		"{{company}}", lead.Company,
		"{{location}}", lead.Location,
		"{{source}}", lead.Source,
		"{{stage}}", lead.StatusName,
		"{{expected_value}}", formatValue(lead.ExpectedValue),
	)
	return replacer.Replace(text)
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
