// ABOUTME: Tests for workbook writing and inspection.
// ABOUTME: Round-trips sheets through .xlsx files and in-memory buffers.

package workbook

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleSheets() []Sheet {
	return []Sheet{
		{
			Name:    SheetClients,
			Columns: []string{"ClientID", "FullName", "Age"},
			Rows: [][]any{
				{1, "Lena Becker", 34},
				{2, "Jonas Yilmaz", 61},
			},
		},
		{
			Name:    SheetProducts,
			Columns: []string{"ProductCode", "ProductName"},
			Rows:    [][]any{{"AUTO_BASIC", "Auto Basic Liability"}},
		},
		{
			Name:    SheetPolicies,
			Columns: []string{"PolicyID", "ClientID"},
		},
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := Write(path, sampleSheets()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	summary, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	want := []string{SheetClients, SheetProducts, SheetPolicies}
	if got := summary.SheetNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("SheetNames() = %v, want %v", got, want)
	}

	clients, ok := summary.Sheet(SheetClients)
	if !ok {
		t.Fatal("Clients sheet missing")
	}
	if !reflect.DeepEqual(clients.Columns, []string{"ClientID", "FullName", "Age"}) {
		t.Errorf("Clients columns = %v", clients.Columns)
	}
	if clients.Rows != 2 {
		t.Errorf("Clients rows = %d, want 2", clients.Rows)
	}

	// Header-only sheet keeps its header and has no data rows
	policies, _ := summary.Sheet(SheetPolicies)
	if policies.Rows != 0 || len(policies.Columns) != 2 {
		t.Errorf("Policies = %+v, want header only", policies)
	}

	if _, ok := summary.Sheet("Sheet1"); ok {
		t.Error("default sheet should have been renamed")
	}
}

func TestWrite_EmptySheets(t *testing.T) {
	sheets := make([]Sheet, len(RequiredSheets))
	for i, name := range RequiredSheets {
		sheets[i] = EmptySheet(name)
	}

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := Write(path, sheets); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	summary, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if got := summary.SheetNames(); !reflect.DeepEqual(got, RequiredSheets) {
		t.Errorf("SheetNames() = %v, want %v", got, RequiredSheets)
	}
	for _, s := range summary.Sheets {
		if s.Rows != 0 || len(s.Columns) != 0 {
			t.Errorf("sheet %s = %+v, want blank", s.Name, s)
		}
	}
	if missing := summary.MissingSheets(); len(missing) != 0 {
		t.Errorf("MissingSheets() = %v, want none", missing)
	}
}

func TestWrite_NoSheets(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "none.xlsx"), nil); err == nil {
		t.Error("expected error for workbook without sheets")
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is expected
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Write(filepath.Join(blocker, "book.xlsx"), sampleSheets()); err == nil {
		t.Error("expected error writing below a regular file")
	}
}

func TestWriteTo_InspectReader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, sampleSheets()[:2]); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("WriteTo() wrote nothing")
	}

	summary, err := InspectReader(&buf)
	if err != nil {
		t.Fatalf("InspectReader() error = %v", err)
	}

	want := []string{SheetPolicies, SheetSalesReps, SheetCommissionRules}
	if got := summary.MissingSheets(); !reflect.DeepEqual(got, want) {
		t.Errorf("MissingSheets() = %v, want %v", got, want)
	}

	products, ok := summary.Sheet(SheetProducts)
	if !ok || products.Rows != 1 {
		t.Errorf("Products = %+v, want 1 row", products)
	}
}

func TestInspect_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(path); err == nil {
		t.Error("expected error inspecting a non-workbook file")
	}
}
