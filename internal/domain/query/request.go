package query

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/paytrack/payroll-console-go/internal/pkg/validator"
)

// FromRequest parses a table request into a State. Only filter keys listed
// in allowedFilters are accepted; unknown parameters are ignored rather than
// forwarded blindly to the backend. Sort fields are restricted the same way.
func FromRequest(r *http.Request, defaultPageSize int, allowedSort, allowedFilters []string) (State, error) {
	var errs validator.ValidationErrors

	q := r.URL.Query()
	s := New(defaultPageSize)

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, validator.ValidationError{Field: "page", Message: "must be a positive integer"})
		} else {
			s.Page = page
		}
	}

	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			errs = append(errs, validator.ValidationError{Field: "page_size", Message: "must be a positive integer"})
		} else {
			s.PageSize = size
		}
	}

	s.Search = strings.TrimSpace(q.Get("search"))

	if ordering := q.Get("ordering"); ordering != "" {
		field := strings.TrimPrefix(ordering, "-")
		if !validator.IsInSlice(field, allowedSort) {
			errs = append(errs, validator.ValidationError{Field: "ordering", Message: "unsupported sort field"})
		} else {
			s.Sort = &Sort{Field: field, Descending: strings.HasPrefix(ordering, "-")}
		}
	}

	for _, key := range allowedFilters {
		if vals, ok := q[key]; ok && len(vals) > 0 {
			filtered := make([]string, 0, len(vals))
			for _, v := range vals {
				if v != "" {
					filtered = append(filtered, v)
				}
			}
			if len(filtered) > 0 {
				s.Filters[key] = filtered
			}
		}
	}

	if len(errs) > 0 {
		return State{}, errs
	}
	return s, nil
}
