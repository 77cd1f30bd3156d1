// Package filter describes filtered, sorted and paginated scans independently
// of the store that executes them.
//
// A caller turns a domain filter (OrderFilter, UserFilter) into predicates and
// builds a QueryPlan with NewQueryPlan. Store adapters execute the plan and
// return a Page: the rows inside the page window plus the total number of rows
// matching the predicates. Offset and limit never affect the total.
//
//	plan := filter.NewQueryPlan(f.Predicates(), f.GenericFilter, filter.FieldCreatedAt)
//	page, err := executor(ctx, plan)
//	first := page.Row(0) // nil when the page is empty
package filter
