package salary

import (
	"fmt"
	"strings"
)

// ReconciledRow is one salary table row after reconciliation: the record
// plus its resolution status and, when computation failed, the error list
// rendered in place of the amount.
type ReconciledRow struct {
	Record Record             `json:"record"`
	Status Status             `json:"status"`
	Errors []CalculationError `json:"errors,omitempty"`
	// AmountDisplay is the salary cell content: the formatted amount when
	// resolved, the error lines when failed, "N/A" otherwise.
	AmountDisplay []string `json:"amount_display"`
	// Err records a per-row reconciliation failure (e.g. the compute call
	// itself was unreachable). It never fails the page.
	Err error `json:"-"`
}

// GridCell is one attendance cell of the detail view. Missing marks a cell
// implicated by a calculation error; Value carries the HH:MM rendering
// otherwise.
type GridCell struct {
	Value   string `json:"value"`
	Missing bool   `json:"missing"`
}

// GridRow is one attendance date of the detail view.
type GridRow struct {
	RecordID int64               `json:"record_id"`
	Date     string              `json:"date"`
	Cells    map[string]GridCell `json:"cells"`
}

// Detail is the full salary detail view model: the record, its resolution
// state, and the attendance grid with per-cell error markers.
type Detail struct {
	Record Record             `json:"record"`
	Status Status             `json:"status"`
	Errors []CalculationError `json:"errors,omitempty"`
	Grid   []GridRow          `json:"attendance"`
	// Warning is a non-blocking notice: the view rendered, but part of the
	// reconciliation cycle could not run.
	Warning string `json:"warning,omitempty"`
}

// ExportFilter scopes a summary export. Nil month/year mean "all periods".
type ExportFilter struct {
	Month       *int
	Year        *int
	Departments []string
}

// Filename derives the export file name from the active period filters.
func (f ExportFilter) Filename() string {
	parts := []string{"salary-summary"}
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("%04d", *f.Year))
	}
	if f.Month != nil {
		parts = append(parts, fmt.Sprintf("%02d", *f.Month))
	}
	return strings.Join(parts, "-") + ".xlsx"
}
