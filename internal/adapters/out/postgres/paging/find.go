// Package paging executes a filter.QueryPlan with GORM.
//
// Rows come back in plan order; rows with equal sort keys have no defined
// relative order.
package paging

import (
	"context"
	"fmt"
	"strings"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns maps logical filter fields to column names.
type Columns map[string]string

// Scope is applied to the row scan only, never to the count.
type Scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Find counts the rows of model T matching plan and loads the page window.
func Find[T any](ctx context.Context, db *gorm.DB, plan filter.QueryPlan, columns Columns, scopes ...Scope) ([]T, int, error) {
	q := db.WithContext(ctx).Model(new(T))

	for _, p := range plan.Predicates {
		column, ok := columns[p.Field]
		if !ok {
			return nil, 0, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("unknown field %q", p.Field))
		}
		cond, arg, err := condition(column, p)
		if err != nil {
			return nil, 0, err
		}
		q = q.Where(cond, arg)
	}

	sortColumn, ok := columns[plan.Sort.Field]
	if !ok {
		return nil, 0, errs.NewFieldNotValidErrorWithCause("orderField",
			fmt.Errorf("unknown field %q", plan.Sort.Field))
	}

	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	scan := base.Scopes(scopes...).Order(clause.OrderByColumn{
		Column: clause.Column{Name: sortColumn},
		Desc:   plan.Sort.Mode == filter.Descending,
	})
	if plan.Paginated {
		scan = scan.Offset(plan.Offset)
	}
	if plan.HasLimit() {
		scan = scan.Limit(plan.Limit)
	}

	var rows []T
	if err := scan.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, int(total), nil
}

func condition(column string, p filter.Predicate) (string, any, error) {
	switch p.Op {
	case filter.Contains:
		fragment, ok := p.Value.(string)
		if !ok {
			return "", nil, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("%s needs a string operand", p.Op))
		}
		return fmt.Sprintf("UPPER(%s) LIKE UPPER(?)", column), "%" + likeEscaper.Replace(fragment) + "%", nil
	case filter.Eq, filter.Lt, filter.Lte, filter.Gt, filter.Gte:
		return fmt.Sprintf("%s %s ?", column, p.Op), p.Value, nil
	default:
		return "", nil, errs.NewFieldNotValidErrorWithCause(p.Field, fmt.Errorf("unsupported operator %q", p.Op))
	}
}
