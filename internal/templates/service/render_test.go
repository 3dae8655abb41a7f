package service

import (
	"testing"

	leadsrepo "leadflow_backend/internal/leads/repository"
)

func TestRenderForLeadSubstitutesFields(t *testing.T) {
	lead := leadsrepo.Lead{
		Name:          "Jane Porter",
		Email:         "jane@acme.io",
		Company:       "Acme",
		Location:      "Berlin",
		Source:        "referral",
		StatusName:    "Qualified",
		ExpectedValue: 2500,
	}

	got := RenderForLead("Hi {{name}} from {{company}} ({{stage}}), budget {{expected_value}}", lead)
	want := "Hi Jane Porter from Acme (Qualified), budget 2500"
	if got != want {
		t.Fatalf("rendered = %q, want %q", got, want)
	}
}

func TestRenderForLeadLeavesUnknownPlaceholders(t *testing.T) {
	got := RenderForLead("Hello {{nmae}}", leadsrepo.Lead{Name: "Jane"})
	if got != "Hello {{nmae}}" {
		t.Fatalf("rendered = %q, want placeholder untouched", got)
	}
}

func TestRenderForLeadFormatsFractionalValue(t *testing.T) {
	got := RenderForLead("{{expected_value}}", leadsrepo.Lead{ExpectedValue: 1500.5})
	if got != "1500.50" {
		t.Fatalf("rendered = %q, want %q", got, "1500.50")
	}
}

func TestRenderForLeadEmptyFieldsRenderEmpty(t *testing.T) {
	got := RenderForLead("[{{phone}}]", leadsrepo.Lead{})
	if got != "[]" {
		t.Fatalf("rendered = %q, want %q", got, "[]")
	}
}
