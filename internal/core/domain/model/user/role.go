package user

import (
	"fmt"

	"storehouse/internal/pkg/errs"
)

// Role is a membership checked by authorization rules.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Kind discriminates the User variant.
type Kind int

const (
	UnknownKind Kind = iota
	Customer
	Employee
)

var kindNames = map[Kind]string{
	Customer: "CUSTOMER",
	Employee: "EMPLOYEE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid user kind", k))
	}
	return nil
}

// KindFromString is the inverse of Kind.String for persisted and transported values.
func KindFromString(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid user kind", s))
}

// defaultRoles returns the roles a freshly registered user of kind k holds.
func (k Kind) defaultRoles() []Role {
	switch k {
	case Customer:
		return []Role{RoleCustomer}
	case Employee:
		return []Role{RoleEmployee}
	default:
		return nil
	}
}
