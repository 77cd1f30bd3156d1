package queries

import (
	"errors"

	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/guard"
)

var ErrGetQueueStandingQueryIsNotConstructed = errors.New(
	"GetQueueStandingQuery must be created via NewGetQueueStandingQuery constructor",
)

// GetQueueStandingQuery asks where a customer's RESERVED order stands.
// The same query drives the position and the wait-time handlers.
type GetQueueStandingQuery struct {
	customerID user.ID

	guard guard.ConstructorGuard
}

func NewGetQueueStandingQuery(customerID user.ID) (GetQueueStandingQuery, error) {
	if customerID <= 0 {
		return GetQueueStandingQuery{}, errs.NewFieldNotValidErrorWithCause("customerId",
			errs.NewValueIsOutOfRangeError("customerId", customerID, 1, "unbounded"))
	}
	return GetQueueStandingQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetQueueStandingQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueStandingQueryIsNotConstructed)
}

func (q GetQueueStandingQuery) CustomerID() user.ID {
	return q.customerID
}
