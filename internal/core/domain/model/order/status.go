package order

import (
	"fmt"

	"storehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	(none) ──> RESERVED ──┬──> PENDING
//	                      ├──> DELIVERED
//	                      └──> CANCELLED
//
// Only RESERVED may move on. PENDING, DELIVERED and CANCELLED accept no
// further transition.
type Status int

const (
	// Unknown is the zero value and stands for "no status yet".
	Unknown Status = iota

	// Reserved is the initial status. The order occupies a queue slot.
	Reserved

	// Pending marks an order being fulfilled.
	Pending

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Reserved:  "RESERVED",
		Pending:   "PENDING",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// Validate rejects Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses the persisted name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no later status can follow.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Transition returns next when the move from s is allowed.
//
// Rules:
//   - next must be a valid status
//   - s must be Unknown (no status yet) or Reserved
//   - next must differ from s
//
// Rejections wrap ErrIllegalTransition and carry a readable reason.
func (s Status) Transition(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if s != Unknown && s != Reserved {
		return Unknown, fmt.Errorf("%w: order is %s, only RESERVED orders can change status", ErrIllegalTransition, s)
	}

	if s == next {
		return Unknown, fmt.Errorf("%w: order is already %s", ErrIllegalTransition, s)
	}

	return next, nil
}
