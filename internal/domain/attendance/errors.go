package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("attendance record not found")
)

// RefreshError reports a failure that happened after the patch was already
// applied: the write succeeded, but one of the follow-up steps (re-fetching
// attendance, recomputing the salary, re-fetching the salary record) did not.
// The operator's edit is not lost; the view just could not be refreshed.
type RefreshError struct {
	Step string
	Err  error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("attendance updated but %s failed: %v", e.Step, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
