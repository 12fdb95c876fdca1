package salary

import (
	"github.com/paytrack/payroll-console-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Record is a backend-computed salary for one (employee, month, year). The
// console only ever reads it; corrections happen indirectly by fixing the
// attendance data that feeds it. A nil SalaryAmount means the backend could
// not complete computation, which in turn means at least one attendance
// record in the window is missing a required time field.
type Record struct {
	ID           int64             `json:"id"`
	Employee     employee.Employee `json:"employee"`
	Month        int               `json:"month"`
	Year         int               `json:"year"`
	SalaryAmount *decimal.Decimal  `json:"salary_amount"`

	// Computed figures, meaningful only when SalaryAmount is non-nil.
	BasicDaysAfterHolidays  decimal.Decimal `json:"basic_days_after_holidays"`
	BasicHoursAfterHolidays decimal.Decimal `json:"basic_hours_after_holidays"`
	ActualWorkHours         decimal.Decimal `json:"actual_work_hours"`
	WorkedDays              decimal.Decimal `json:"worked_days"`
	PenaltyHours            decimal.Decimal `json:"penalty_hours"`
	WorkedDayOffDays        decimal.Decimal `json:"worked_day_off_days"`
	WorkedDayOffHours       decimal.Decimal `json:"worked_day_off_hours"`
	SundayHours             decimal.Decimal `json:"sunday_hours"`
	HolidayHours            decimal.Decimal `json:"holiday_hours"`
	WorkedHolidayHours      decimal.Decimal `json:"worked_holiday_hours"`
	AverageHoursPerDay      decimal.Decimal `json:"average_hours_per_day"`
	OvertimeHours           decimal.Decimal `json:"overtime_hours"`
	TotalHours              decimal.Decimal `json:"total_hours"`
}

// Resolved reports whether the backend completed computation for this record.
func (r Record) Resolved() bool {
	return r.SalaryAmount != nil
}

// Status of a salary record within the reconciliation cycle.
type Status string

const (
	StatusResolved  Status = "resolved"
	StatusPending   Status = "pending"
	StatusComputing Status = "computing"
	StatusFailed    Status = "failed"
)

// FieldError identifies which time field of an attendance record blocked
// computation.
type FieldError struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
}

// CalculationError groups the field errors of one attendance date. It is
// transient reconciliation state: rebuilt wholesale from each compute
// attempt and discarded on navigation away, never persisted.
type CalculationError struct {
	Date   string       `json:"date"`
	Errors []FieldError `json:"errors"`
}

// ComputeResult is the outcome of one remote compute attempt: either the
// resolved record fields or the error list blocking computation. Exactly one
// of the two is set.
type ComputeResult struct {
	Record *Record
	Errors []CalculationError
}

// PeriodOptions are the distinct month/year values present in the salary
// data, used to populate table filters.
type PeriodOptions struct {
	Months []int `json:"months"`
	Years  []int `json:"years"`
}
