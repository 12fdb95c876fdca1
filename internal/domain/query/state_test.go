package query

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesEncodesPaginationAndSearch(t *testing.T) {
	s := New(10)
	s.Page = 3
	s.Search = "nguyen"

	v := s.Values()
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "10", v.Get("page_size"))
	assert.Equal(t, "nguyen", v.Get("search"))
	assert.Empty(t, v.Get("ordering"))
}

func TestValuesOrderingSign(t *testing.T) {
	s := New(10)
	s.Sort = &Sort{Field: "name"}
	assert.Equal(t, "name", s.Values().Get("ordering"))

	s.Sort.Descending = true
	assert.Equal(t, "-name", s.Values().Get("ordering"))
}

func TestValuesRepeatsMultiValuedFilters(t *testing.T) {
	s := New(10)
	s.Filters["departments"] = []string{"Assembly", "Packing"}

	v := s.Values()
	// One parameter entry per selected value, never a delimited string.
	assert.Equal(t, []string{"Assembly", "Packing"}, v["departments"])
}

func TestSameScope(t *testing.T) {
	a := New(10)
	a.Filters["month"] = []string{"5"}

	b := New(10)
	b.Filters["month"] = []string{"5"}
	b.Page = 7
	b.Sort = &Sort{Field: "name", Descending: true}
	assert.True(t, a.SameScope(b), "page and sort do not define the scope")

	b.Search = "x"
	assert.False(t, a.SameScope(b))

	b.Search = ""
	b.Filters["month"] = []string{"6"}
	assert.False(t, a.SameScope(b))
}

func TestFromRequestParsesFullState(t *testing.T) {
	r := httptest.NewRequest("GET", "/salaries?page=2&page_size=25&search=le&ordering=-month&month=5&month=6&bogus=1", nil)

	s, err := FromRequest(r, 10, []string{"month", "name"}, []string{"month", "year"})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, "le", s.Search)
	require.NotNil(t, s.Sort)
	assert.Equal(t, "month", s.Sort.Field)
	assert.True(t, s.Sort.Descending)
	assert.Equal(t, []string{"5", "6"}, s.Filters["month"])
	_, ok := s.Filters["bogus"]
	assert.False(t, ok, "unknown filters are not forwarded")
}

func TestFromRequestDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/employees", nil)

	s, err := FromRequest(r, 10, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 10, s.PageSize)
}

func TestFromRequestRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"zero page", "/employees?page=0"},
		{"non-numeric page", "/employees?page=abc"},
		{"zero page size", "/employees?page_size=0"},
		{"unknown sort field", "/employees?ordering=salary_amount"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", c.url, nil)
			_, err := FromRequest(r, 10, []string{"name"}, nil)
			assert.Error(t, err)
		})
	}
}
