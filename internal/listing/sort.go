// Package listing orders and slices record snapshots for the list endpoint.
package listing

import (
	"sort"

	"github.com/urlboard/urlboard/internal/record"
)

// SortField names a record field common to all status variants.
type SortField string

// Sortable fields.
const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseSortField validates a sortBy query value. Empty input means no sorting.
func ParseSortField(raw string) (SortField, bool) {
	switch SortField(raw) {
	case SortByCreatedAt, SortByUpdatedAt:
		return SortField(raw), true
	default:
		return "", false
	}
}

// ParseOrder normalizes an order query value, defaulting to descending.
func ParseOrder(raw string) Order {
	if Order(raw) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// Sort returns a new slice ordered by the given field and direction. The sort
// is stable: ties keep the input's iteration order. The input is not mutated.
func Sort(records []record.Record, field SortField, order Order) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortKey(out[i], field), sortKey(out[j], field)
		if order == OrderAsc {
			return a < b
		}
		return a > b
	})
	return out
}

func sortKey(rec record.Record, field SortField) int64 {
	if field == SortByUpdatedAt {
		return rec.UpdatedAt
	}
	return rec.CreatedAt
}
