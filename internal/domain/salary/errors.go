package salary

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary record not found")
	// ErrEmptyComputeResult is returned when the compute endpoint answers
	// with neither a resolved record nor an error list.
	ErrEmptyComputeResult = errors.New("compute returned neither a record nor errors")
)
