package salary

import (
	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
	"github.com/paytrack/payroll-console-go/internal/domain/salary"
)

// MissingMarker replaces a cell's value when a calculation error implicates
// that (date, field).
const MissingMarker = "Missing time"

// BuildGrid renders the attendance window as the detail grid. A cell shows
// its stored value truncated to HH:MM; when a calculation error exists whose
// date matches the row and whose list names the cell's field, the cell shows
// the missing marker instead.
func BuildGrid(records []attendance.Record, errs []salary.CalculationError) []salary.GridRow {
	flagged := make(map[string]map[string]bool, len(errs))
	for _, calcErr := range errs {
		fields, ok := flagged[calcErr.Date]
		if !ok {
			fields = make(map[string]bool, len(calcErr.Errors))
			flagged[calcErr.Date] = fields
		}
		for _, fieldErr := range calcErr.Errors {
			fields[fieldErr.ErrorType] = true
		}
	}

	rows := make([]salary.GridRow, 0, len(records))
	for _, rec := range records {
		values := map[string]*string{
			attendance.FieldMorningClockIn:    rec.MorningClockIn,
			attendance.FieldMorningClockOut:   rec.MorningClockOut,
			attendance.FieldAfternoonClockIn:  rec.AfternoonClockIn,
			attendance.FieldAfternoonClockOut: rec.AfternoonClockOut,
		}

		cells := make(map[string]salary.GridCell, len(attendance.Fields))
		for _, field := range attendance.Fields {
			if flagged[rec.Date][field] {
				cells[field] = salary.GridCell{Value: MissingMarker, Missing: true}
				continue
			}
			cells[field] = salary.GridCell{Value: attendance.Clock(values[field])}
		}

		rows = append(rows, salary.GridRow{
			RecordID: rec.ID,
			Date:     rec.Date,
			Cells:    cells,
		})
	}
	return rows
}
