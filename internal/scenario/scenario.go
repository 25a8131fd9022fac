// ABOUTME: The five fixture scenarios and the runner that writes them to disk.
// ABOUTME: Valid, edge-case, large, missing-sheet and empty-sheet workbooks.

package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"github.com/2389/fixturegen/internal/seed"
	"github.com/2389/fixturegen/internal/workbook"
)

// ErrUnknownScenario is returned for scenario names not in the table.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario names
const (
	Valid         = "valid"
	EdgeCases     = "edge_cases"
	Large         = "large"
	MissingSheets = "missing_sheets"
	Empty         = "empty"
)

// Scenario describes one output workbook.
type Scenario struct {
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description"`
}

var scenarios = []Scenario{
	{Name: Valid, File: "test_data_valid.xlsx", Description: "50 clients"},
	{Name: EdgeCases, File: "test_data_edge_cases.xlsx", Description: "30 clients with edge cases"},
	{Name: Large, File: "test_data_large.xlsx", Description: "1000 clients for performance testing"},
	{Name: MissingSheets, File: "test_data_missing_sheets.xlsx", Description: "invalid - missing sheets"},
	{Name: Empty, File: "test_data_empty.xlsx", Description: "invalid - empty sheets"},
}

// Client counts per scenario
const (
	validClients = 50
	edgeClients  = 30
	largeClients = 1000
)

// All returns every scenario in run order.
func All() []Scenario {
	return slices.Clone(scenarios)
}

// Names returns every scenario name in run order.
func Names() []string {
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Build generates the sheets of one scenario.
// The missing_sheets scenario draws a fresh valid dataset.
func Build(g *seed.Generator, name string) ([]workbook.Sheet, error) {
	b := &builder{gen: g}
	return b.sheets(name)
}

// builder keeps the valid dataset so the missing_sheets workbook can be cut
// from the same data within one run.
type builder struct {
	gen   *seed.Generator
	valid *seed.Dataset
}

func (b *builder) sheets(name string) ([]workbook.Sheet, error) {
	switch name {
	case Valid:
		b.valid = b.gen.Dataset(validClients, false)
		return b.valid.Sheets(), nil
	case EdgeCases:
		return b.gen.Dataset(edgeClients, true).Sheets(), nil
	case Large:
		return b.gen.Dataset(largeClients, false).Sheets(), nil
	case MissingSheets:
		if b.valid == nil {
			b.valid = b.gen.Dataset(validClients, false)
		}
		return []workbook.Sheet{
			seed.ClientsSheet(b.valid.Clients),
			seed.ProductsSheet(b.valid.Products),
		}, nil
	case Empty:
		sheets := make([]workbook.Sheet, len(workbook.RequiredSheets))
		for i, n := range workbook.RequiredSheets {
			sheets[i] = workbook.EmptySheet(n)
		}
		return sheets, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Result reports one written workbook.
type Result struct {
	Scenario string
	Path     string
	// Rows maps sheet name to data-row count.
	Rows map[string]int
}

// Runner writes scenario workbooks into a directory.
type Runner struct {
	gen *seed.Generator
	dir string
}

func NewRunner(g *seed.Generator, dir string) *Runner {
	return &Runner{gen: g, dir: dir}
}

// Run writes the named scenarios, or all of them when none are given, in
// run order. The first failure stops the run; files already written stay.
func (r *Runner) Run(ctx context.Context, names ...string) ([]Result, error) {
	selected, err := r.selection(names)
	if err != nil {
		return nil, err
	}

	b := &builder{gen: r.gen}
	results := make([]Result, 0, len(selected))

	for i, s := range selected {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		log.Printf("[%d/%d] Generating %s test data (%s)...", i+1, len(selected), s.Name, s.Description)

		sheets, err := b.sheets(s.Name)
		if err != nil {
			return results, err
		}

		path := filepath.Join(r.dir, s.File)
		if err := workbook.Write(path, sheets); err != nil {
			return results, fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		rows := make(map[string]int, len(sheets))
		for _, sheet := range sheets {
			rows[sheet.Name] = len(sheet.Rows)
		}
		results = append(results, Result{Scenario: s.Name, Path: path, Rows: rows})
		log.Printf("  ✓ Created: %s", path)
	}

	return results, nil
}

// selection resolves names into run order, ignoring repeats.
func (r *Runner) selection(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return All(), nil
	}

	for _, n := range names {
		if _, err := Lookup(n); err != nil {
			return nil, err
		}
	}

	var selected []Scenario
	for _, s := range scenarios {
		if slices.Contains(names, s.Name) {
			selected = append(selected, s)
		}
	}
	return selected, nil
}
