// ABOUTME: Spreadsheet exporter writing named tables into one .xlsx workbook.
// ABOUTME: Each table becomes a sheet with a header row and no index column.

package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names the Insurance Sales Tool reads.
const (
	SheetClients         = "Clients"
	SheetProducts        = "Products"
	SheetPolicies        = "Policies"
	SheetSalesReps       = "SalesReps"
	SheetCommissionRules = "CommissionRules"
)

// RequiredSheets lists every sheet a complete workbook carries, in write order.
var RequiredSheets = []string{SheetClients, SheetProducts, SheetPolicies, SheetSalesReps, SheetCommissionRules}

// Sheet is one named table. Rows hold cell values in Columns order.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// EmptySheet returns a sheet with no columns and no rows.
func EmptySheet(name string) Sheet {
	return Sheet{Name: name}
}

// Write encodes sheets into a workbook at path, in the given order.
func Write(path string, sheets []Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

// WriteTo encodes sheets into a workbook streamed to w.
func WriteTo(w io.Writer, sheets []Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

func build(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	for i, sheet := range sheets {
		if i == 0 {
			// Reuse the sheet every new file starts with
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to name sheet %s: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeRows(f, sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeRows streams the header and data rows of sheet.
// A sheet without columns is left blank.
func writeRows(f *excelize.File, sheet Sheet) error {
	if len(sheet.Columns) == 0 {
		return nil
	}

	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", sheet.Name, err)
	}

	header := make([]any, len(sheet.Columns))
	for i, c := range sheet.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.Name, i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet %s: %w", sheet.Name, err)
	}
	return nil
}
