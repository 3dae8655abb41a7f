// Package importer reconciles bulk CSV lead uploads against the lead
// store: it validates rows, skips duplicates, scores accepted rows, and
// persists them in a single batch.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/platform/phone"
	"leadflow_backend/platform/sanitize"
)

// Error messages recorded per failed row.
const (
	msgMissingNameOrEmail = "Missing name or email"
	msgRowProcessing      = "Row processing error"
)

// Columns recognized in the upload header. Matching is case-sensitive;
// unknown columns are ignored and missing columns leave fields absent.
const (
	colName          = "name"
	colEmail         = "email"
	colPhone         = "phone"
	colCompany       = "company"
	colLocation      = "location"
	colSource        = "source"
	colExpectedValue = "expected_value"
	colStatus        = "status"
)

// row is one parsed CSV data row. Fields hold raw cell text; cells the
// upload did not carry stay empty.
type row struct {
	name          string
	email         string
	phone         string
	company       string
	location      string
	source        string
	status        string
	expectedValue string
}

// NewLead is a validated, scored row ready for persistence.
type NewLead struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	Location      string
	Source        string
	Status        string
	ExpectedValue float64
	Score         int
	ScoreReason   string
	CreatedBy     uuid.UUID
}

// LeadStore is the persistence surface the reconciler needs.
type LeadStore interface {
	// EmailExists reports whether a lead with the exact email is stored.
	EmailExists(ctx context.Context, email string) (bool, error)
	// InsertBatch persists all leads atomically. A failure means none
	// were stored.
	InsertBatch(ctx context.Context, leads []NewLead) error
}

// Summary is the per-row outcome report for one import run.
// Invariant: Imported + Skipped + Failed == Total.
type Summary struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// Reconciler runs CSV imports. Construct with New.
type Reconciler struct {
	store  LeadStore
	scorer *scoring.Scorer
}

// New creates a reconciler over the given store and scoring policy.
func New(store LeadStore, scorer *scoring.Scorer) *Reconciler {
	return &Reconciler{store: store, scorer: scorer}
}

// Import parses the CSV input and classifies every row as imported,
// skipped (duplicate email), or failed. Row-level problems never abort
// the batch; only an unreadable input or a failed bulk insert returns
// an error, in which case no summary is produced.
//
// Duplicate emails are checked against the store and against rows
// already accepted earlier in the same batch, so an upload repeating an
// email admits only the first occurrence.
func (r *Reconciler) Import(ctx context.Context, input io.Reader, createdBy uuid.UUID) (*Summary, error) {
	rows, err := parse(input)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	summary := &Summary{Total: len(rows), Errors: []string{}}
	accepted := make([]NewLead, 0, len(rows))
	batchEmails := make(map[string]struct{}, len(rows))

	for _, rw := range rows {
		if rw.name == "" || rw.email == "" {
			summary.Failed++
			summary.Errors = append(summary.Errors, msgMissingNameOrEmail)
			continue
		}

		if _, seen := batchEmails[rw.email]; seen {
			summary.Skipped++
			continue
		}
		exists, err := r.store.EmailExists(ctx, rw.email)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, msgRowProcessing)
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		lead, err := r.buildLead(rw, createdBy)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, msgRowProcessing)
			continue
		}

		batchEmails[rw.email] = struct{}{}
		accepted = append(accepted, lead)
		summary.Imported++
	}

	if len(accepted) > 0 {
		if err := r.store.InsertBatch(ctx, accepted); err != nil {
			return nil, fmt.Errorf("insert leads: %w", err)
		}
	}

	return summary, nil
}

func (r *Reconciler) buildLead(rw row, createdBy uuid.UUID) (NewLead, error) {
	expectedValue := 0.0
	if rw.expectedValue != "" {
		v, err := strconv.ParseFloat(rw.expectedValue, 64)
		if err != nil {
			return NewLead{}, fmt.Errorf("expected_value: %w", err)
		}
		expectedValue = v
	}

	// Stage data is not factored into scores at import time.
	result := r.scorer.Score(scoring.Attributes{
		Email:   rw.email,
		Phone:   rw.phone,
		Company: rw.company,
		Source:  rw.source,
	})

	return NewLead{
		Name:          sanitize.StripHTML(rw.name),
		Email:         rw.email,
		Phone:         phone.NormalizeE164(rw.phone),
		Company:       sanitize.StripHTML(rw.company),
		Location:      rw.location,
		Source:        rw.source,
		Status:        rw.status,
		ExpectedValue: expectedValue,
		Score:         result.Score,
		ScoreReason:   result.Reason,
		CreatedBy:     createdBy,
	}, nil
}

// parse reads the CSV into one typed row per data line. The header is
// matched against the recognized column set; unknown columns are
// skipped.
func parse(input io.Reader) ([]row, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	setters := map[string]func(*row, string){
		colName:          func(r *row, v string) { r.name = v },
		colEmail:         func(r *row, v string) { r.email = v },
		colPhone:         func(r *row, v string) { r.phone = v },
		colCompany:       func(r *row, v string) { r.company = v },
		colLocation:      func(r *row, v string) { r.location = v },
		colSource:        func(r *row, v string) { r.source = v },
		colExpectedValue: func(r *row, v string) { r.expectedValue = v },
		colStatus:        func(r *row, v string) { r.status = v },
	}

	header := records[0]
	bound := make(map[int]func(*row, string), len(header))
	for i, col := range header {
		if set, ok := setters[col]; ok {
			bound[i] = set
		}
	}

	rows := make([]row, 0, len(records)-1)
	for _, record := range records[1:] {
		var rw row
		for i, set := range bound {
			if i < len(record) {
				set(&rw, record[i])
			}
		}
		rows = append(rows, rw)
	}
	return rows, nil
}
