// ABOUTME: Tests for generation run storage.
// ABOUTME: Covers recording, ordering, path filtering and lookups of runs.

package store

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestRecordRun_FillsDefaults(t *testing.T) {
	s := newTestStore(t)

	seed := int64(42)
	run := &Run{
		BatchID:  NewBatchID(),
		Scenario: "valid",
		Path:     "fixtures/test_data_valid.xlsx",
		Seed:     &seed,
		Sheets:   map[string]int{"Clients": 50, "Policies": 187, "Products": 21},
	}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if run.ID == "" {
		t.Error("RecordRun() did not assign an id")
	}
	if run.CreatedAt.IsZero() {
		t.Error("RecordRun() did not set CreatedAt")
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Scenario != "valid" || got.Path != run.Path || got.BatchID != run.BatchID {
		t.Errorf("GetRun() = %+v", got)
	}
	if got.Seed == nil || *got.Seed != 42 {
		t.Errorf("Seed = %v, want 42", got.Seed)
	}
	if !reflect.DeepEqual(got.Sheets, run.Sheets) {
		t.Errorf("Sheets = %v, want %v", got.Sheets, run.Sheets)
	}
}

func TestRecordRun_UnseededAndNoSheets(t *testing.T) {
	s := newTestStore(t)

	run := &Run{BatchID: "b", Scenario: "empty", Path: "test_data_empty.xlsx"}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	got, err := s.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Seed != nil {
		t.Errorf("Seed = %d, want nil", *got.Seed)
	}
	if len(got.Sheets) != 0 {
		t.Errorf("Sheets = %v, want empty", got.Sheets)
	}
}

func TestRecordRun_DuplicateID(t *testing.T) {
	s := newTestStore(t)

	run := &Run{ID: "fixed", BatchID: "b", Scenario: "valid", Path: "a.xlsx", Sheets: map[string]int{"Clients": 1}}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	dup := &Run{ID: "fixed", BatchID: "b", Scenario: "large", Path: "b.xlsx"}
	if err := s.RecordRun(dup); err == nil {
		t.Fatal("expected error recording duplicate id")
	}

	got, err := s.GetRun("fixed")
	if err != nil {
		t.Fatal(err)
	}
	if got.Scenario != "valid" {
		t.Errorf("duplicate insert changed run to %s", got.Scenario)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetRun("nope"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRun() error = %v, want sql.ErrNoRows", err)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"valid", "edge_cases", "large"} {
		run := &Run{
			BatchID:   "batch",
			Scenario:  name,
			Path:      "out/test_data_" + name + ".xlsx",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.RecordRun(run); err != nil {
			t.Fatalf("RecordRun(%s) error = %v", name, err)
		}
	}

	runs, err := s.ListRuns(RunQuery{Limit: 10})
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	var order []string
	for _, r := range runs {
		order = append(order, r.Scenario)
	}
	if want := []string{"large", "edge_cases", "valid"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	runs, err = s.ListRuns(RunQuery{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("limit 2 returned %d runs", len(runs))
	}
}

func TestListRuns_PathFilterIsLiteral(t *testing.T) {
	s := newTestStore(t)

	for _, p := range []string{"a/test_data_valid.xlsx", "b/testXdataXvalid.xlsx", "c/test_data_large.xlsx"} {
		if err := s.RecordRun(&Run{BatchID: "b", Scenario: "valid", Path: p}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(RunQuery{PathContains: "test_data_valid"})
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Path != "a/test_data_valid.xlsx" {
		t.Errorf("expected only the literal match, got %d runs", len(runs))
	}

	runs, err = s.ListRuns(RunQuery{PathContains: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("percent sign should match literally, got %d runs", len(runs))
	}
}
