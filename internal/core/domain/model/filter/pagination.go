package filter

import (
	"fmt"

	"storehouse/internal/pkg/errs"
)

// OrderMode is the sort direction.
type OrderMode int

const (
	Ascending OrderMode = iota
	Descending
)

func (m OrderMode) String() string {
	if m == Descending {
		return "DESC"
	}
	return "ASC"
}

// OrderModeFromString accepts ASC/ASCENDING and DESC/DESCENDING; empty means ascending.
func OrderModeFromString(s string) (OrderMode, error) {
	switch s {
	case "", "ASC", "ASCENDING", "asc", "ascending":
		return Ascending, nil
	case "DESC", "DESCENDING", "desc", "descending":
		return Descending, nil
	default:
		return Ascending, errs.NewFieldNotValidErrorWithCause("orderMode", fmt.Errorf("%q is not a sort direction", s))
	}
}

// PaginationData is the optional sort and page window of a filter.
// MaxResults <= 0 means no limit.
type PaginationData struct {
	FirstResult int
	MaxResults  int
	OrderField  string
	OrderMode   OrderMode
}

// GenericFilter is embedded in every domain filter.
type GenericFilter struct {
	Pagination *PaginationData
}

func (f GenericFilter) HasPaginationData() bool {
	return f.Pagination != nil
}

func (f GenericFilter) HasOrderField() bool {
	return f.Pagination != nil && f.Pagination.OrderField != ""
}

// Page is one window of a filtered scan.
type Page[T any] struct {
	// NumberOfRows counts every row matching the predicates, ignoring the window.
	NumberOfRows int
	Rows         []T
}

func NewPage[T any](numberOfRows int, rows []T) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{NumberOfRows: numberOfRows, Rows: rows}
}

// Row returns the i-th row of the page, or the zero value (nil for pointer
// rows) when i is outside the page.
func (p Page[T]) Row(i int) T {
	var zero T
	if i < 0 || i >= len(p.Rows) {
		return zero
	}
	return p.Rows[i]
}

// IsEmpty reports whether nothing matched the predicates.
func (p Page[T]) IsEmpty() bool {
	return p.NumberOfRows == 0
}
