package filter

// Operator is a comparison supported by every executor.
type Operator string

const (
	Eq       Operator = "="
	Lt       Operator = "<"
	Lte      Operator = "<="
	Gt       Operator = ">"
	Gte      Operator = ">="
	Contains Operator = "CONTAINS" // case-insensitive substring match on strings
)

// Predicate compares a logical field with a bound value.
// Values are normalized to time.Time, int64, string or decimal.Decimal.
type Predicate struct {
	Field string
	Op    Operator
	Value any
}

// Sort is a single-field ordering.
type Sort struct {
	Field string
	Mode  OrderMode
}

// QueryPlan is the store-independent form of a filtered scan.
type QueryPlan struct {
	Predicates []Predicate
	Sort       Sort
	Paginated  bool
	Offset     int
	Limit      int
}

// NewQueryPlan merges predicates with the sort and page window of f.
//
// Without an explicit order field the plan sorts by defaultSortField
// ascending. The window applies to the row scan only.
func NewQueryPlan(predicates []Predicate, f GenericFilter, defaultSortField string) QueryPlan {
	plan := QueryPlan{
		Predicates: predicates,
		Sort:       Sort{Field: defaultSortField, Mode: Ascending},
	}

	if f.HasOrderField() {
		plan.Sort = Sort{Field: f.Pagination.OrderField, Mode: f.Pagination.OrderMode}
	}

	if f.HasPaginationData() {
		plan.Paginated = true
		plan.Offset = max(f.Pagination.FirstResult, 0)
		plan.Limit = f.Pagination.MaxResults
	}

	return plan
}

// HasLimit reports whether the row scan is bounded.
func (p QueryPlan) HasLimit() bool {
	return p.Paginated && p.Limit > 0
}
