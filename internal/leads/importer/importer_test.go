package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"leadflow_backend/internal/leads/scoring"
)

type fakeStore struct {
	existing  map[string]bool
	inserted  []NewLead
	lookups   []string
	findErr   error
	insertErr error
}

func (s *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.lookups = append(s.lookups, email)
	if s.findErr != nil {
		return false, s.findErr
	}
	return s.existing[email], nil
}

func (s *fakeStore) InsertBatch(_ context.Context, leads []NewLead) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, leads...)
	return nil
}

func newReconciler(store *fakeStore) *Reconciler {
	return New(store, scoring.NewDefault())
}

func runImport(t *testing.T, store *fakeStore, csv string) *Summary {
	t.Helper()
	summary, err := newReconciler(store).Import(context.Background(), strings.NewReader(csv), uuid.New())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	return summary
}

func TestImportEndToEnd(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, strings.Join([]string{
		"name,email,phone,company,source",
		"Jane,jane@x.com,555,Acme,LinkedIn",
		",bob@x.com,,,",
		"Jane2,jane@x.com,,,",
	}, "\n"))

	if summary.Total != 3 || summary.Imported != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Errors) != 1 || summary.Errors[0] != "Missing name or email" {
		t.Fatalf("unexpected errors: %v", summary.Errors)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 inserted lead, got %d", len(store.inserted))
	}
	lead := store.inserted[0]
	if lead.Score != 80 {
		t.Fatalf("expected score 80 for imported row, got %d", lead.Score)
	}
	if lead.ScoreReason == "" {
		t.Fatalf("expected a score reason on the imported row")
	}
}

func TestImportSummaryInvariant(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{"dup@x.com": true}}
	summary := runImport(t, store, strings.Join([]string{
		"name,email",
		"A,a@x.com",
		"B,dup@x.com",
		"C,",
		"D,d@x.com",
	}, "\n"))

	if summary.Imported+summary.Skipped+summary.Failed != summary.Total {
		t.Fatalf("count invariant violated: %+v", summary)
	}
	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
}

func TestImportExistingEmailSkipped(t *testing.T) {
	store := &fakeStore{existing: map[string]bool{"jane@x.com": true}}
	summary := runImport(t, store, "name,email\nJane,jane@x.com\n")

	if summary.Skipped != 1 || summary.Imported != 0 || summary.Failed != 0 {
		t.Fatalf("expected skipped duplicate, got %+v", summary)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("duplicate row must not be persisted")
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("skips must not record errors, got %v", summary.Errors)
	}
}

func TestImportMissingEmailNeverQueriesStore(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, "name,email\nJane,\n")

	if summary.Failed != 1 {
		t.Fatalf("expected 1 failed row, got %+v", summary)
	}
	if len(store.lookups) != 0 {
		t.Fatalf("invalid row must not hit the store, saw lookups %v", store.lookups)
	}
}

func TestImportEmptyTable(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, "name,email,phone,company,location,source,expected_value,status\n")

	if summary.Total != 0 || summary.Imported != 0 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Fatalf("expected all-zero summary, got %+v", summary)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", summary.Errors)
	}
}

func TestImportIntraBatchDuplicateFirstWins(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, strings.Join([]string{
		"name,email",
		"First,same@x.com",
		"Second,same@x.com",
	}, "\n"))

	if summary.Imported != 1 || summary.Skipped != 1 {
		t.Fatalf("expected first occurrence to win, got %+v", summary)
	}
	if len(store.inserted) != 1 || store.inserted[0].Name != "First" {
		t.Fatalf("expected only the first row persisted, got %+v", store.inserted)
	}
}

func TestImportStoreReadErrorFailsRowOnly(t *testing.T) {
	store := &fakeStore{findErr: errors.New("connection reset")}
	summary := runImport(t, store, strings.Join([]string{
		"name,email",
		"A,a@x.com",
		"B,",
	}, "\n"))

	if summary.Failed != 2 {
		t.Fatalf("expected both rows failed, got %+v", summary)
	}
	if summary.Errors[0] != "Row processing error" {
		t.Fatalf("expected generic processing message, got %v", summary.Errors)
	}
}

func TestImportBadExpectedValueFailsRow(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, strings.Join([]string{
		"name,email,expected_value",
		"A,a@x.com,not-a-number",
		"B,b@x.com,1500.50",
	}, "\n"))

	if summary.Failed != 1 || summary.Imported != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if store.inserted[0].ExpectedValue != 1500.50 {
		t.Fatalf("expected value 1500.50, got %v", store.inserted[0].ExpectedValue)
	}
}

func TestImportBulkInsertFailureAbortsRun(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("unique violation")}
	_, err := newReconciler(store).Import(context.Background(),
		strings.NewReader("name,email\nJane,jane@x.com\n"), uuid.New())
	if err == nil {
		t.Fatalf("expected error when bulk insert fails")
	}
}

func TestImportBindsColumnsByHeaderPosition(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, strings.Join([]string{
		"company,email,expected_value,name,source",
		"Acme,jane@x.com,1200.50,Jane,referral",
	}, "\n"))

	if summary.Imported != 1 {
		t.Fatalf("expected 1 imported, got %+v", summary)
	}
	got := store.inserted[0]
	if got.Name != "Jane" || got.Company != "Acme" || got.Source != "referral" {
		t.Fatalf("fields bound to the wrong columns: %+v", got)
	}
	if got.ExpectedValue != 1200.50 {
		t.Fatalf("ExpectedValue = %v, want 1200.50", got.ExpectedValue)
	}
}

func TestImportIgnoresUnknownColumns(t *testing.T) {
	store := &fakeStore{}
	summary := runImport(t, store, strings.Join([]string{
		"name,email,Nickname,COMPANY",
		"Jane,jane@x.com,JJ,Acme",
	}, "\n"))

	if summary.Imported != 1 {
		t.Fatalf("expected 1 imported, got %+v", summary)
	}
	// Header matching is case-sensitive, so COMPANY must not populate
	// the company field.
	if store.inserted[0].Company != "" {
		t.Fatalf("unexpected company value %q", store.inserted[0].Company)
	}
}
