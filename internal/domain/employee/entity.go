package employee

import (
	"github.com/paytrack/payroll-console-go/internal/domain/department"
)

// Employee mirrors the backend's employee resource. The console never writes
// employees; they are decoded straight off the wire, so the entity carries
// the backend's field names.
type Employee struct {
	EmployeeCode string                  `json:"employee_code"`
	Name         string                  `json:"name"`
	PhoneNumber  string                  `json:"phone_number"`
	DateOfBirth  string                  `json:"date_of_birth"`
	Departments  []department.Department `json:"departments"`
}
