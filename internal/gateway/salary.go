package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paytrack/payroll-console-go/internal/domain/salary"
)

// ListSalaries fetches one page of salary records.
func (c *Client) ListSalaries(ctx context.Context, query url.Values) (Page[salary.Record], error) {
	var page Page[salary.Record]
	req, err := c.newRequest(ctx, http.MethodGet, "/api/salaries/", query, nil)
	if err != nil {
		return page, err
	}
	if err := c.do("list salaries", req, &page); err != nil {
		return Page[salary.Record]{}, err
	}
	return page, nil
}

// GetSalary fetches one salary record by ID. The backend exposes single
// records through the list endpoint's id filter.
func (c *Client) GetSalary(ctx context.Context, id int64) (salary.Record, error) {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(id, 10))

	page, err := c.ListSalaries(ctx, query)
	if err != nil {
		return salary.Record{}, err
	}
	if len(page.Results) == 0 {
		return salary.Record{}, salary.ErrSalaryNotFound
	}
	return page.Results[0], nil
}

// ListPeriods fetches the distinct month/year sets present in the salary
// data, for filter population.
func (c *Client) ListPeriods(ctx context.Context) (salary.PeriodOptions, error) {
	var periods salary.PeriodOptions
	req, err := c.newRequest(ctx, http.MethodGet, "/api/salary-periods/", nil, nil)
	if err != nil {
		return periods, err
	}
	if err := c.do("list periods", req, &periods); err != nil {
		return salary.PeriodOptions{}, err
	}
	return periods, nil
}

type computeRequest struct {
	EmployeeCode string `json:"employee_code"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
}

type computeErrorBody struct {
	Errors []salary.CalculationError `json:"errors"`
}

// ComputeSalary triggers salary computation for one (employee, month, year).
// A structured error list from the backend is the expected "pending" outcome
// and is returned as data, not as an error; only an unreachable backend or a
// body without structure is a TransportError.
func (c *Client) ComputeSalary(ctx context.Context, employeeCode string, month, year int) (salary.ComputeResult, error) {
	const op = "compute salary"

	req, err := c.newRequest(ctx, http.MethodPost, "/api/calculate-salary/", nil, computeRequest{
		EmployeeCode: employeeCode,
		Month:        month,
		Year:         year,
	})
	if err != nil {
		return salary.ComputeResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return salary.ComputeResult{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return salary.ComputeResult{}, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		var record salary.Record
		if err := json.Unmarshal(body, &record); err != nil {
			return salary.ComputeResult{}, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return salary.ComputeResult{Record: &record}, nil
	}

	var failure computeErrorBody
	if err := json.Unmarshal(body, &failure); err == nil && len(failure.Errors) > 0 {
		return salary.ComputeResult{Errors: failure.Errors}, nil
	}

	return salary.ComputeResult{}, &TransportError{Op: op, StatusCode: resp.StatusCode}
}

// ExportSummary downloads the backend's summary workbook for the given
// filters and returns the payload together with the filter-derived filename.
func (c *Client) ExportSummary(ctx context.Context, filter salary.ExportFilter) ([]byte, string, error) {
	const op = "export summary"

	query := url.Values{}
	if filter.Month != nil {
		query.Set("month", strconv.Itoa(*filter.Month))
	}
	if filter.Year != nil {
		query.Set("year", strconv.Itoa(*filter.Year))
	}
	for _, d := range filter.Departments {
		query.Add("departments", d)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/export-salary-summary/", query, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, "", &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Op: op, Err: err}
	}
	return payload, filter.Filename(), nil
}
