// internal/store/filter.go
package store

import "sort"

// ValueRange is an inclusive from/to bound on a property's values. The
// comparison is the store's plain value comparison, so numeric semantics
// require comparable string representations.
type ValueRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PropertyFilter restricts one property either to a set of accepted values
// (membership) or to an inclusive range. When Range is set it wins over
// Values.
type PropertyFilter struct {
	Values []string    `json:"values,omitempty"`
	Range  *ValueRange `json:"range,omitempty"`
}

// FilterQuery describes one filtered catalog read. Filters are combined
// with AND across properties; within a property the accepted values are
// combined with OR. Limit <= 0 disables pagination.
type FilterQuery struct {
	Filters map[string]PropertyFilter
	Name    string
	Sort    string
	Offset  int
	Limit   int
}

// filterUIDs returns the filtered property identifiers in a stable order so
// generated SQL is deterministic.
func (q FilterQuery) filterUIDs() []string {
	uids := make([]string, 0, len(q.Filters))
	for uid := range q.Filters {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}
