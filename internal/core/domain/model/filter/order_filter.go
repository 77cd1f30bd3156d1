package filter

import (
	"errors"
	"time"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
)

// Tier restricts a scan to premium or standard customers.
type Tier int

const (
	AnyTier Tier = iota
	PremiumTier
	StandardTier
)

// OrderFilter selects orders. Nil fields do not constrain the scan.
type OrderFilter struct {
	GenericFilter

	StartDate  *time.Time // createdAt >= StartDate
	EndDate    *time.Time // createdAt <= EndDate
	CustomerID *user.ID
	Status     *order.Status
	Tier       Tier
}

func (f OrderFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return errs.NewFieldNotValidErrorWithCause("startDate", errors.New("is after endDate"))
	}
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return errs.NewFieldNotValidErrorWithCause("status", err)
		}
	}
	return nil
}

// Predicates translates the set fields into comparisons.
func (f OrderFilter) Predicates() []Predicate {
	var predicates []Predicate

	if f.StartDate != nil {
		predicates = append(predicates, Predicate{Field: FieldCreatedAt, Op: Gte, Value: *f.StartDate})
	}
	if f.EndDate != nil {
		predicates = append(predicates, Predicate{Field: FieldCreatedAt, Op: Lte, Value: *f.EndDate})
	}
	if f.CustomerID != nil {
		predicates = append(predicates, Predicate{Field: FieldCustomerID, Op: Eq, Value: int64(*f.CustomerID)})
	}
	if f.Status != nil {
		predicates = append(predicates, Predicate{Field: FieldCurrentStatus, Op: Eq, Value: f.Status.String()})
	}

	switch f.Tier {
	case PremiumTier:
		predicates = append(predicates, Predicate{Field: FieldCustomerID, Op: Lt, Value: int64(user.PremiumIDMax)})
	case StandardTier:
		predicates = append(predicates, Predicate{Field: FieldCustomerID, Op: Gte, Value: int64(user.PremiumIDMax)})
	case AnyTier:
	}

	return predicates
}

// Plan sorts by creation time unless the filter names another field.
func (f OrderFilter) Plan() QueryPlan {
	return NewQueryPlan(f.Predicates(), f.GenericFilter, FieldCreatedAt)
}
