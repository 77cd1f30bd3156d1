package filter

import "storehouse/internal/core/domain/model/user"

// UserFilter selects users by name fragment and kind.
type UserFilter struct {
	GenericFilter

	Name string
	Kind *user.Kind
}

func (f UserFilter) Predicates() []Predicate {
	var predicates []Predicate
	if f.Name != "" {
		predicates = append(predicates, Predicate{Field: FieldName, Op: Contains, Value: f.Name})
	}
	if f.Kind != nil {
		predicates = append(predicates, Predicate{Field: FieldKind, Op: Eq, Value: f.Kind.String()})
	}
	return predicates
}

// Plan sorts by name unless the filter names another field.
func (f UserFilter) Plan() QueryPlan {
	return NewQueryPlan(f.Predicates(), f.GenericFilter, FieldName)
}
