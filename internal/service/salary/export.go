package salary

import (
	"fmt"
	"strings"

	"github.com/paytrack/payroll-console-go/internal/domain/salary"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Salaries"

var exportHeader = []string{"Employee Code", "Name", "Month", "Year", "Salary", "Status", "Errors"}

// ExportAnnotated builds a workbook from reconciled rows. Unlike the backend
// export, it carries the reconciliation outcome: failed rows list their
// calculation errors next to the empty amount.
func ExportAnnotated(rows []salary.ReconciledRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		amount := "N/A"
		if row.Record.Resolved() {
			amount = row.Record.SalaryAmount.String()
		}

		var errLines []string
		for _, calcErr := range row.Errors {
			for _, fieldErr := range calcErr.Errors {
				errLines = append(errLines, fmt.Sprintf("%s %s: %s", calcErr.Date, fieldErr.ErrorType, fieldErr.Message))
			}
		}

		cells := []any{
			row.Record.Employee.EmployeeCode,
			row.Record.Employee.Name,
			row.Record.Month,
			row.Record.Year,
			amount,
			string(row.Status),
			strings.Join(errLines, "\n"),
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
