// ABOUTME: Reads a workbook back to report its sheets, headers and row counts.
// ABOUTME: Mirrors the required-sheet check the Insurance Sales Tool runs on upload.

package workbook

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"
)

// SheetSummary describes one sheet of an inspected workbook.
type SheetSummary struct {
	Name    string
	Columns []string
	// Rows counts data rows below the header.
	Rows int
}

// Summary describes an inspected workbook.
type Summary struct {
	Sheets []SheetSummary
}

// Inspect opens the workbook at path and summarizes it.
func Inspect(path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	return summarize(f)
}

// InspectReader summarizes a workbook read from r.
func InspectReader(r io.Reader) (*Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	return summarize(f)
}

func summarize(f *excelize.File) (*Summary, error) {
	s := &Summary{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}

		sheet := SheetSummary{Name: name}
		if len(rows) > 0 {
			sheet.Columns = rows[0]
			sheet.Rows = len(rows) - 1
		}
		s.Sheets = append(s.Sheets, sheet)
	}
	return s, nil
}

// SheetNames returns the sheet names in workbook order.
func (s *Summary) SheetNames() []string {
	names := make([]string, len(s.Sheets))
	for i, sheet := range s.Sheets {
		names[i] = sheet.Name
	}
	return names
}

// Sheet looks up a sheet by name.
func (s *Summary) Sheet(name string) (SheetSummary, bool) {
	for _, sheet := range s.Sheets {
		if sheet.Name == name {
			return sheet, true
		}
	}
	return SheetSummary{}, false
}

// MissingSheets returns the required sheets absent from the workbook.
func (s *Summary) MissingSheets() []string {
	names := s.SheetNames()
	var missing []string
	for _, required := range RequiredSheets {
		if !slices.Contains(names, required) {
			missing = append(missing, required)
		}
	}
	return missing
}
