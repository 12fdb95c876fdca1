package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paytrack/payroll-console-go/internal/domain/attendance"
)

// MonthlyAttendance fetches the attendance window of one employee for one
// month/year, ordered by date.
func (c *Client) MonthlyAttendance(ctx context.Context, employeeCode string, month, year int) ([]attendance.Record, error) {
	query := url.Values{}
	query.Set("employee_code", employeeCode)
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	var records []attendance.Record
	req, err := c.newRequest(ctx, http.MethodGet, "/api/employee-monthly-attendance/", query, nil)
	if err != nil {
		return nil, err
	}
	if err := c.do("list attendance", req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateAttendance patches the four time fields of one attendance record.
// Every field is always transmitted; a nil field is an explicit null, which
// clears the stored value. A 400/422 with field messages becomes a
// ValidationError so the edit surface can show it inline.
func (c *Client) UpdateAttendance(ctx context.Context, id int64, patch attendance.Patch) (attendance.Record, error) {
	const op = "update attendance"

	path := fmt.Sprintf("/api/attendance-records/%d/", id)
	req, err := c.newRequest(ctx, http.MethodPatch, path, nil, patch)
	if err != nil {
		return attendance.Record{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return attendance.Record{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return attendance.Record{}, &TransportError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		var record attendance.Record
		if err := json.Unmarshal(body, &record); err != nil {
			return attendance.Record{}, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return record, nil

	case resp.StatusCode == http.StatusNotFound:
		return attendance.Record{}, attendance.ErrRecordNotFound

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if fields := decodeFieldErrors(body); len(fields) > 0 {
			return attendance.Record{}, &ValidationError{Fields: fields}
		}
		return attendance.Record{}, &TransportError{Op: op, StatusCode: resp.StatusCode}

	default:
		return attendance.Record{}, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
}

// decodeFieldErrors parses a rejected-patch body of the form
// {"field": ["message", ...], ...} into a field→first-message map.
func decodeFieldErrors(body []byte) map[string]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	fields := make(map[string]string)
	for field, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil && len(list) > 0 {
			fields[field] = list[0]
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil && single != "" {
			fields[field] = single
		}
	}
	return fields
}
