package attendance

// Record is one employee-day of clock data. The four time-of-day fields are
// nullable; a nil field means "not recorded" and blocks salary computation
// for the owning month.
type Record struct {
	ID                int64   `json:"id"`
	EmployeeCode      string  `json:"employee_code"`
	Date              string  `json:"date"`
	MorningClockIn    *string `json:"morning_clock_in"`
	MorningClockOut   *string `json:"morning_clock_out"`
	AfternoonClockIn  *string `json:"afternoon_clock_in"`
	AfternoonClockOut *string `json:"afternoon_clock_out"`
}

// Field names as the backend reports them in calculation errors.
const (
	FieldMorningClockIn    = "morning_clock_in"
	FieldMorningClockOut   = "morning_clock_out"
	FieldAfternoonClockIn  = "afternoon_clock_in"
	FieldAfternoonClockOut = "afternoon_clock_out"
)

// Fields lists the four editable time fields in display order.
var Fields = []string{
	FieldMorningClockIn,
	FieldMorningClockOut,
	FieldAfternoonClockIn,
	FieldAfternoonClockOut,
}

// Clock renders a stored time-of-day value for display: "HH:MM:SS" values
// are truncated to "HH:MM", absent values render as "N/A".
func Clock(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	if len(*v) > 5 {
		return (*v)[:5]
	}
	return *v
}
