package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"us number without prefix", "(415) 555-2671", "+14155552671"},
		{"already e164", "+14155552671", "+14155552671"},
		{"invalid area code passed through", "(555) 212-3456", "(555) 212-3456"},
		{"international prefix kept", "+31612345678", "+31612345678"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"unparseable returned trimmed", "  not-a-phone  ", "not-a-phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.in); got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
