// Package scoring computes lead quality scores. The score is a bounded
// weighted sum over lead attributes, paired with a human-readable
// explanation of each contribution.
package scoring

import (
	"fmt"
	"strings"
)

// MaxScore is the hard cap on any computed score.
const MaxScore = 100

// StageMode selects how stage information feeds the score.
type StageMode int

const (
	// StageModeName looks the stage name up in the policy's stage table.
	StageModeName StageMode = iota
	// StageModeProbability adds a numeric win probability directly.
	StageModeProbability
)

// Stage carries stage input in exactly one of two forms: a name to be
// resolved against the weight table, or a numeric default probability
// supplied by the caller.
type Stage struct {
	Mode        StageMode
	Name        string
	Probability int
}

// StageByName scores the stage via the policy's stage weight table.
func StageByName(name string) *Stage {
	return &Stage{Mode: StageModeName, Name: name}
}

// StageByProbability scores the stage by adding the given probability.
func StageByProbability(p int) *Stage {
	return &Stage{Mode: StageModeProbability, Probability: p}
}

// Attributes are the lead fields that feed the score. Empty strings are
// treated as absent.
type Attributes struct {
	Email   string
	Phone   string
	Company string
	Source  string
	Stage   *Stage
}

// Result is a computed score with its explanation. Reason is a
// comma-joined list of contribution clauses in evaluation order; zero
// contributions are omitted.
type Result struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Weights configures a scoring policy. Sources and Stages map
// lower-cased names to weights; names missing from the map receive the
// corresponding fallback weight. All weights must be non-negative.
type Weights struct {
	Email   int
	Phone   int
	Company int

	Sources        map[string]int
	SourceFallback int

	Stages        map[string]int
	StageFallback int
}

// FlatWeights is the default policy: 20 points per present field, any
// source counts, and only late pipeline stages contribute.
func FlatWeights() Weights {
	return Weights{
		Email:          20,
		Phone:          20,
		Company:        20,
		SourceFallback: 20,
		Stages: map[string]int{
			"qualified":   20,
			"proposal":    20,
			"negotiation": 20,
			"won":         20,
			"lost":        0,
		},
		StageFallback: 0,
	}
}

// BalancedWeights is an alternative policy with graded source and stage
// tables.
func BalancedWeights() Weights {
	return Weights{
		Email:   15,
		Phone:   15,
		Company: 10,
		Sources: map[string]int{
			"linkedin":  15,
			"website":   12,
			"referral":  20,
			"cold_call": 5,
			"other":     8,
		},
		SourceFallback: 8,
		Stages: map[string]int{
			"new":         5,
			"contacted":   10,
			"qualified":   20,
			"proposal":    25,
			"negotiation": 30,
			"won":         40,
			"lost":        0,
		},
		StageFallback: 5,
	}
}

// Scorer computes lead scores under a fixed policy. It is stateless and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// New creates a scorer with the given policy.
func New(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// NewDefault creates a scorer with the flat default policy.
func NewDefault() *Scorer {
	return New(FlatWeights())
}

// Score computes the score and reason for the given attributes. It is
// pure: identical input always yields identical output.
func (s *Scorer) Score(attrs Attributes) Result {
	score := 0
	var reasons []string

	addFactor := func(points int, clause string) {
		if points <= 0 {
			return
		}
		score += points
		reasons = append(reasons, clause)
	}

	if present(attrs.Email) {
		addFactor(s.weights.Email, fmt.Sprintf("Has email (+%d)", s.weights.Email))
	}
	if present(attrs.Phone) {
		addFactor(s.weights.Phone, fmt.Sprintf("Has phone (+%d)", s.weights.Phone))
	}
	if present(attrs.Company) {
		addFactor(s.weights.Company, fmt.Sprintf("Has company (+%d)", s.weights.Company))
	}

	if present(attrs.Source) {
		w := s.sourceWeight(attrs.Source)
		addFactor(w, fmt.Sprintf("Source quality (+%d)", w))
	}

	if attrs.Stage != nil {
		switch attrs.Stage.Mode {
		case StageModeProbability:
			addFactor(attrs.Stage.Probability, fmt.Sprintf("Stage probability (+%d)", attrs.Stage.Probability))
		case StageModeName:
			if present(attrs.Stage.Name) {
				w := s.stageWeight(attrs.Stage.Name)
				addFactor(w, fmt.Sprintf("Stage weight (%s) +%d", attrs.Stage.Name, w))
			}
		}
	}

	if score > MaxScore {
		score = MaxScore
	}

	return Result{Score: score, Reason: strings.Join(reasons, ", ")}
}

func (s *Scorer) sourceWeight(source string) int {
	key := strings.ToLower(strings.TrimSpace(source))
	if w, ok := s.weights.Sources[key]; ok {
		return w
	}
	return s.weights.SourceFallback
}

func (s *Scorer) stageWeight(name string) int {
	key := strings.ToLower(strings.TrimSpace(name))
	if w, ok := s.weights.Stages[key]; ok {
		return w
	}
	return s.weights.StageFallback
}

func present(v string) bool {
	return strings.TrimSpace(v) != ""
}
