package attendance

import (
	"github.com/paytrack/payroll-console-go/internal/pkg/validator"
)

// UpdateRequest carries the editable fields of one attendance record. The
// date itself is read-only; only the four time fields may change. A nil or
// blank field clears the stored value.
type UpdateRequest struct {
	ID                int64   `json:"-"`
	MorningClockIn    *string `json:"morning_clock_in"`
	MorningClockOut   *string `json:"morning_clock_out"`
	AfternoonClockIn  *string `json:"afternoon_clock_in"`
	AfternoonClockOut *string `json:"afternoon_clock_out"`
}

// Validate checks that every provided value is a well-formed time of day.
// Cross-field rules (clock-out after clock-in, etc.) are the backend's
// responsibility and come back as calculation errors, not form errors.
func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	check := func(field string, v *string) {
		if v == nil || *v == "" {
			return
		}
		if !validator.IsValidTimeOfDay(*v) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid time (HH:MM or HH:MM:SS)"})
		}
	}

	check(FieldMorningClockIn, r.MorningClockIn)
	check(FieldMorningClockOut, r.MorningClockOut)
	check(FieldAfternoonClockIn, r.AfternoonClockIn)
	check(FieldAfternoonClockOut, r.AfternoonClockOut)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Patch is the wire form of a partial attendance update. All four keys are
// always serialized; a nil field becomes an explicit JSON null, which the
// backend treats as "clear this value". Blank is never encoded as "omit".
type Patch struct {
	MorningClockIn    *string `json:"morning_clock_in"`
	MorningClockOut   *string `json:"morning_clock_out"`
	AfternoonClockIn  *string `json:"afternoon_clock_in"`
	AfternoonClockOut *string `json:"afternoon_clock_out"`
}

// Patch converts the request into its wire form, folding blank strings into
// explicit nulls.
func (r *UpdateRequest) Patch() Patch {
	norm := func(v *string) *string {
		if v == nil || *v == "" {
			return nil
		}
		return v
	}
	return Patch{
		MorningClockIn:    norm(r.MorningClockIn),
		MorningClockOut:   norm(r.MorningClockOut),
		AfternoonClockIn:  norm(r.AfternoonClockIn),
		AfternoonClockOut: norm(r.AfternoonClockOut),
	}
}
