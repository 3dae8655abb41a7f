package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Acme Corp", "Acme Corp"},
		{"tags removed", "<b>Jane</b> Porter", "Jane Porter"},
		{"script removed", `<script>alert(1)</script>hello`, "alert(1)hello"},
		{"entities decoded", "Jones &amp; Sons", "Jones & Sons"},
		{"result trimmed", "  <p>padded</p>  ", "padded"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripHTML(tc.in); got != tc.want {
				t.Fatalf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
