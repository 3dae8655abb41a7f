package scoring

import (
	"strings"
	"testing"
)

func TestScoreEmptyAttributes(t *testing.T) {
	s := NewDefault()
	got := s.Score(Attributes{})
	if got.Score != 0 {
		t.Fatalf("expected score 0 for empty attributes, got %d", got.Score)
	}
	if got.Reason != "" {
		t.Fatalf("expected empty reason, got %q", got.Reason)
	}
}

func TestScoreSingleField(t *testing.T) {
	s := NewDefault()
	got := s.Score(Attributes{Email: "a@b.com"})
	if got.Score != 20 {
		t.Fatalf("expected score 20 for email only, got %d", got.Score)
	}
	if got.Reason != "Has email (+20)" {
		t.Fatalf("expected single clause, got %q", got.Reason)
	}
}

func TestScoreAllPresenceFields(t *testing.T) {
	s := NewDefault()
	got := s.Score(Attributes{
		Email:   "jane@x.com",
		Phone:   "555",
		Company: "Acme",
		Source:  "LinkedIn",
	})
	if got.Score != 80 {
		t.Fatalf("expected score 80, got %d", got.Score)
	}
	want := "Has email (+20), Has phone (+20), Has company (+20), Source quality (+20)"
	if got.Reason != want {
		t.Fatalf("expected reason %q, got %q", want, got.Reason)
	}
}

func TestScoreNeverExceedsCap(t *testing.T) {
	s := NewDefault()
	got := s.Score(Attributes{
		Email:   "a@b.com",
		Phone:   "555",
		Company: "Acme",
		Source:  "referral",
		Stage:   StageByName("Won"),
	})
	if got.Score != MaxScore {
		t.Fatalf("expected capped score %d, got %d", MaxScore, got.Score)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	cases := []Attributes{
		{},
		{Source: "cold_call"},
		{Stage: StageByName("lost")},
		{Stage: StageByProbability(0)},
	}
	s := New(BalancedWeights())
	for _, attrs := range cases {
		if got := s.Score(attrs); got.Score < 0 {
			t.Fatalf("score went negative for %+v: %d", attrs, got.Score)
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	s := New(BalancedWeights())
	small := Attributes{Email: "a@b.com"}
	large := Attributes{Email: "a@b.com", Phone: "555", Company: "Acme", Source: "website"}
	if s.Score(large).Score < s.Score(small).Score {
		t.Fatalf("adding fields lowered the score: %d < %d",
			s.Score(large).Score, s.Score(small).Score)
	}
}

func TestScoreIdempotent(t *testing.T) {
	s := New(BalancedWeights())
	attrs := Attributes{Email: "a@b.com", Source: "linkedin", Stage: StageByName("Qualified")}
	first := s.Score(attrs)
	second := s.Score(attrs)
	if first != second {
		t.Fatalf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}

func TestScoreUnknownSourceUsesFallback(t *testing.T) {
	s := New(BalancedWeights())
	got := s.Score(Attributes{Source: "carrier pigeon"})
	if got.Score != 8 {
		t.Fatalf("expected fallback weight 8 for unknown source, got %d", got.Score)
	}
	if !strings.Contains(got.Reason, "Source quality (+8)") {
		t.Fatalf("expected fallback clause in reason, got %q", got.Reason)
	}
}

func TestScoreEmptySourceExcluded(t *testing.T) {
	s := NewDefault()
	got := s.Score(Attributes{Email: "a@b.com", Source: "   "})
	if got.Score != 20 {
		t.Fatalf("blank source must not contribute, got score %d", got.Score)
	}
	if strings.Contains(got.Reason, "Source") {
		t.Fatalf("blank source must be omitted from reason, got %q", got.Reason)
	}
}

func TestScoreSourceCaseInsensitive(t *testing.T) {
	s := New(BalancedWeights())
	lower := s.Score(Attributes{Source: "referral"})
	upper := s.Score(Attributes{Source: "Referral"})
	if lower.Score != upper.Score {
		t.Fatalf("source lookup must be case-insensitive: %d vs %d", lower.Score, upper.Score)
	}
	if lower.Score != 20 {
		t.Fatalf("expected referral weight 20, got %d", lower.Score)
	}
}

func TestScoreStageByName(t *testing.T) {
	s := New(BalancedWeights())
	got := s.Score(Attributes{Stage: StageByName("Negotiation")})
	if got.Score != 30 {
		t.Fatalf("expected stage weight 30, got %d", got.Score)
	}
	want := "Stage weight (Negotiation) +30"
	if got.Reason != want {
		t.Fatalf("expected reason %q, got %q", want, got.Reason)
	}
}

func TestScoreStageLostContributesNothing(t *testing.T) {
	s := New(BalancedWeights())
	got := s.Score(Attributes{Email: "a@b.com", Stage: StageByName("Lost")})
	if got.Score != 15 {
		t.Fatalf("lost stage must contribute 0, got score %d", got.Score)
	}
	if strings.Contains(got.Reason, "Stage") {
		t.Fatalf("zero stage contribution must be omitted, got %q", got.Reason)
	}
}

func TestScoreStageByProbability(t *testing.T) {
	s := New(BalancedWeights())
	got := s.Score(Attributes{Email: "a@b.com", Stage: StageByProbability(50)})
	if got.Score != 65 {
		t.Fatalf("expected 15 + 50 = 65, got %d", got.Score)
	}
	if !strings.Contains(got.Reason, "Stage probability (+50)") {
		t.Fatalf("expected probability clause, got %q", got.Reason)
	}
}

func TestScoreUnknownStageUsesFallback(t *testing.T) {
	s := New(BalancedWeights())
	got := s.Score(Attributes{Stage: StageByName("limbo")})
	if got.Score != 5 {
		t.Fatalf("expected stage fallback weight 5, got %d", got.Score)
	}
}
