package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderIsNotConstructed    = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrIDAlreadyAssigned        = errors.New("order id is already assigned")
	ErrIllegalTransition        = errors.New("illegal status transition")
	ErrOrderNotFound            = errors.New("order not found")
	ErrDuplicateActiveOrder     = errors.New("customer already has a reserved order")
	ErrInvalidCustomerReference = errors.New("order customer does not match the caller")
	ErrStatusCannotBeChanged    = errors.New("status cannot be changed")
)

// StatusCannotBeChangedError re-signals a state machine rejection to callers
// of the lifecycle service. Reason is the state machine's message.
type StatusCannotBeChangedError struct {
	Reason string
	Cause  error
}

func NewStatusCannotBeChangedError(cause error) *StatusCannotBeChangedError {
	return &StatusCannotBeChangedError{Reason: cause.Error(), Cause: cause}
}

func (e *StatusCannotBeChangedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStatusCannotBeChanged, e.Reason)
}

func (e *StatusCannotBeChangedError) Unwrap() []error {
	return []error{ErrStatusCannotBeChanged, e.Cause}
}
