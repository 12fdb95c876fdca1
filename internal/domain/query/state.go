package query

import (
	"net/url"
	"sort"
	"strconv"
)

// Sort is a single-field ordering. At most one field is active per table.
type Sort struct {
	Field      string
	Descending bool
}

// State is the full query state of one table instance: pagination, sort,
// column filters and free-text search. It is the only input a list fetch
// takes and the only thing a table view mutates.
type State struct {
	Page     int
	PageSize int
	Sort     *Sort
	Filters  map[string][]string
	Search   string
}

// New returns the state a freshly mounted table starts from.
func New(pageSize int) State {
	return State{
		Page:     1,
		PageSize: pageSize,
		Filters:  map[string][]string{},
	}
}

// Clone returns a deep copy. Views mutate their filter maps in place between
// interactions, so stored state must never alias a caller's map.
func (s State) Clone() State {
	out := s
	out.Filters = make(map[string][]string, len(s.Filters))
	for k, v := range s.Filters {
		out.Filters[k] = append([]string(nil), v...)
	}
	if s.Sort != nil {
		srt := *s.Sort
		out.Sort = &srt
	}
	return out
}

// Values encodes the state as backend query parameters. Ordering uses a
// leading "-" for descending. Multi-valued filters are encoded as one
// repeated parameter per selected value, never a delimited string.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("page_size", strconv.Itoa(s.PageSize))

	if s.Search != "" {
		v.Set("search", s.Search)
	}

	if s.Sort != nil && s.Sort.Field != "" {
		ordering := s.Sort.Field
		if s.Sort.Descending {
			ordering = "-" + ordering
		}
		v.Set("ordering", ordering)
	}

	// Deterministic encoding order for filters.
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, val := range s.Filters[k] {
			v.Add(k, val)
		}
	}

	return v
}

// SameScope reports whether two states address the same result set, i.e.
// identical search and filters. A scope change forces the page back to 1;
// page and sort changes alone preserve the scope.
func (s State) SameScope(o State) bool {
	return s.Search == o.Search && filtersEqual(s.Filters, o.Filters)
}

func filtersEqual(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}
