// Package memory provides in-process adapters for the storehouse ports:
// repositories, a unit of work, and a priority intake channel. They back the
// "memory" store mode and the domain tests.
package memory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Fields maps logical field names to value accessors of T.
type Fields[T any] map[string]func(T) any

// Apply executes plan over rows: filter, count, stable sort, then window.
func Apply[T any](rows []T, plan filter.QueryPlan, fields Fields[T]) (filter.Page[T], error) {
	for _, p := range plan.Predicates {
		if _, ok := fields[p.Field]; !ok {
			return filter.Page[T]{}, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("unknown field %q", p.Field))
		}
	}
	sortKey, ok := fields[plan.Sort.Field]
	if !ok {
		return filter.Page[T]{}, errs.NewFieldNotValidErrorWithCause("orderField",
			fmt.Errorf("unknown field %q", plan.Sort.Field))
	}

	matched := make([]T, 0, len(rows))
	for _, row := range rows {
		ok, err := matchesAll(row, plan.Predicates, fields)
		if err != nil {
			return filter.Page[T]{}, err
		}
		if ok {
			matched = append(matched, row)
		}
	}

	var sortErr error
	slices.SortStableFunc(matched, func(a, b T) int {
		c, err := compare(sortKey(a), sortKey(b))
		if err != nil {
			sortErr = err
		}
		if plan.Sort.Mode == filter.Descending {
			return -c
		}
		return c
	})
	if sortErr != nil {
		return filter.Page[T]{}, sortErr
	}

	total := len(matched)
	start, end := 0, total
	if plan.Paginated {
		start = min(plan.Offset, total)
		if plan.HasLimit() {
			end = min(start+plan.Limit, total)
		}
	}

	return filter.NewPage(total, slices.Clone(matched[start:end])), nil
}

func matchesAll[T any](row T, predicates []filter.Predicate, fields Fields[T]) (bool, error) {
	for _, p := range predicates {
		ok, err := matches(p, fields[p.Field](row))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matches(p filter.Predicate, value any) (bool, error) {
	if p.Op == filter.Contains {
		s, ok1 := value.(string)
		fragment, ok2 := p.Value.(string)
		if !ok1 || !ok2 {
			return false, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("%s needs string operands", p.Op))
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(fragment)), nil
	}

	c, err := compare(value, p.Value)
	if err != nil {
		return false, errs.NewFieldNotValidErrorWithCause(p.Field, err)
	}

	switch p.Op {
	case filter.Eq:
		return c == 0, nil
	case filter.Lt:
		return c < 0, nil
	case filter.Lte:
		return c <= 0, nil
	case filter.Gt:
		return c > 0, nil
	case filter.Gte:
		return c >= 0, nil
	default:
		return false, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("unsupported operator %q", p.Op))
	}
}

func compare(a, b any) (int, error) {
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y), nil
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y), nil
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}
