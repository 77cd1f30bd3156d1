package queries

import (
	"context"
	"fmt"

	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/domain/services"
	"storehouse/internal/pkg/errs"
)

// CustomerStanding is a customer's queue position and wait time together with
// the customer record.
type CustomerStanding struct {
	Customer *user.User
	Position int
	WaitTime int
}

// UserGetter loads a single user by identity.
type UserGetter interface {
	Get(ctx context.Context, id user.ID) (*user.User, error)
}

type GetCustomerStandingQueryHandler struct {
	users      UserGetter
	calculator services.QueueCalculator
}

func NewGetCustomerStandingQueryHandler(
	users UserGetter,
	calculator services.QueueCalculator,
) GetCustomerStandingQueryHandler {
	return GetCustomerStandingQueryHandler{users: users, calculator: calculator}
}

// Handle returns an error wrapping errs.ErrObjectNotFound when the customer is
// unknown or holds no RESERVED order.
func (h GetCustomerStandingQueryHandler) Handle(ctx context.Context, query GetQueueStandingQuery) (CustomerStanding, error) {
	if err := query.Validate(); err != nil {
		return CustomerStanding{}, err
	}

	customer, err := h.users.Get(ctx, query.CustomerID())
	if err != nil {
		return CustomerStanding{}, err
	}

	position, err := h.calculator.Position(ctx, query.CustomerID())
	if err != nil {
		return CustomerStanding{}, err
	}
	wait, err := h.calculator.WaitTime(ctx, query.CustomerID())
	if err != nil {
		return CustomerStanding{}, err
	}
	if position == services.NotQueued || wait == services.NotQueued {
		return CustomerStanding{}, fmt.Errorf("customer %d is not queued: %w", query.CustomerID(),
			errs.NewObjectNotFoundError("reserved order of customer", query.CustomerID()))
	}

	return CustomerStanding{Customer: customer, Position: position, WaitTime: wait}, nil
}
