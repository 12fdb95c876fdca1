package department

// Department is read-only reference data, fetched unpaginated from the
// backend to populate table filter options.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
