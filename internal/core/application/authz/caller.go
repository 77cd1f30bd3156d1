// Package authz carries the identity of whoever invokes a use case.
// Authentication happens outside the service; handlers receive a Caller value.
package authz

import (
	"errors"
	"fmt"
	"slices"

	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
)

var ErrNotAuthorized = errors.New("caller is not authorized")

// Caller is the acting user and the roles it presents.
type Caller struct {
	ID    user.ID
	Roles []user.Role
}

func NewCaller(id user.ID, roles ...user.Role) (Caller, error) {
	if id <= 0 {
		return Caller{}, errs.NewValueIsOutOfRangeError("caller id", id, 1, "unbounded")
	}
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return Caller{}, err
		}
	}
	return Caller{ID: id, Roles: slices.Clone(roles)}, nil
}

func (c Caller) HasRole(r user.Role) bool {
	return slices.Contains(c.Roles, r)
}

// IsEmployeeEquivalent is true for EMPLOYEE and ADMIN callers.
func (c Caller) IsEmployeeEquivalent() bool {
	return c.HasRole(user.RoleEmployee) || c.HasRole(user.RoleAdmin)
}

// IsCustomerOnly is true for callers holding CUSTOMER without any staff role.
func (c Caller) IsCustomerOnly() bool {
	return c.HasRole(user.RoleCustomer) && !c.IsEmployeeEquivalent()
}

// Deny wraps ErrNotAuthorized with the attempted action.
func (c Caller) Deny(action string) error {
	return fmt.Errorf("%w: caller %d may not %s", ErrNotAuthorized, c.ID, action)
}
