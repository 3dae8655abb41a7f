// Package phone normalizes phone numbers to E.164.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed for numbers without a country prefix.
const DefaultRegion = "US"

// NormalizeE164 parses a raw phone number and formats it as E.164.
// Empty input returns empty output. Unparseable numbers are returned
// trimmed, so imports never fail on a bad phone field.
func NormalizeE164(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
