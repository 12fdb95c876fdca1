package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/paytrack/payroll-console-go/internal/domain/department"
	"github.com/paytrack/payroll-console-go/internal/domain/employee"
)

// ListEmployees fetches one page of employees. The query carries pagination,
// ordering, search and column filters already encoded by the caller.
func (c *Client) ListEmployees(ctx context.Context, query url.Values) (Page[employee.Employee], error) {
	var page Page[employee.Employee]
	req, err := c.newRequest(ctx, http.MethodGet, "/api/employees/", query, nil)
	if err != nil {
		return page, err
	}
	if err := c.do("list employees", req, &page); err != nil {
		return Page[employee.Employee]{}, err
	}
	return page, nil
}

// ListDepartments fetches the full department reference list, unpaginated.
func (c *Client) ListDepartments(ctx context.Context) ([]department.Department, error) {
	var departments []department.Department
	req, err := c.newRequest(ctx, http.MethodGet, "/api/departments/all/", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := c.do("list departments", req, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}
