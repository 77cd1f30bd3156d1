package user

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"storehouse/internal/pkg/errs"
)

// PremiumIDMax is the exclusive upper bound of premium customer identities.
const PremiumIDMax ID = 1000

const (
	nameMinLength  = 3
	nameMaxLength  = 40
	emailMaxLength = 70
)

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewCustomer, NewEmployee or RestoreUser")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrIDAlreadyAssigned    = errors.New("user id is already assigned")
)

// ID is the numeric identity of a user, assigned on persist.
type ID int64

// IsPremiumID reports whether a customer with this identity belongs to the premium tier.
func IsPremiumID(id ID) bool {
	return id < PremiumIDMax
}

// User is either a Customer or an Employee.
type User struct {
	id        ID
	kind      Kind
	name      string
	email     string
	roles     []Role
	createdAt time.Time

	isConstructed bool
}

// NewCustomer registers a customer holding the CUSTOMER role.
func NewCustomer(name, email string) (*User, error) {
	return newUser(Customer, name, email)
}

// NewEmployee registers an employee holding the EMPLOYEE role.
func NewEmployee(name, email string) (*User, error) {
	return newUser(Employee, name, email)
}

// NewUser dispatches on kind; used by commands that receive the kind as data.
func NewUser(kind Kind, name, email string) (*User, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return newUser(kind, name, email)
}

func newUser(kind Kind, name, email string) (*User, error) {
	u := &User{
		kind:          kind,
		roles:         kind.defaultRoles(),
		createdAt:     time.Now().UTC().Truncate(time.Microsecond),
		isConstructed: true,
	}

	if err := errors.Join(
		u.setName(name),
		u.setEmail(email),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted user without applying registration defaults.
func RestoreUser(id ID, kind Kind, name, email string, roles []Role, createdAt time.Time) (*User, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	u := &User{
		id:            id,
		kind:          kind,
		createdAt:     createdAt,
		isConstructed: true,
	}

	errList := []error{u.setName(name), u.setEmail(email)}
	for _, r := range roles {
		errList = append(errList, u.GrantRole(r))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() ID               { return u.id }
func (u *User) Kind() Kind           { return u.kind }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Roles returns a copy of the granted roles.
func (u *User) Roles() []Role {
	return slices.Clone(u.roles)
}

func (u *User) HasRole(r Role) bool {
	return slices.Contains(u.roles, r)
}

func (u *User) IsCustomer() bool {
	return u.kind == Customer
}

// IsPremium is true only for customers below the premium threshold.
// Employees are never premium.
func (u *User) IsPremium() bool {
	return u.IsCustomer() && IsPremiumID(u.id)
}

// AssignID sets the identity chosen by the store. It can be called once.
func (u *User) AssignID(id ID) error {
	if u.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "unbounded")
	}
	u.id = id
	return nil
}

// GrantRole adds r when it is not held yet.
func (u *User) GrantRole(r Role) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if !u.HasRole(r) {
		u.roles = append(u.roles, r)
	}
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < nameMinLength || n > nameMaxLength {
		return errs.NewFieldNotValidErrorWithCause("name",
			errs.NewValueIsOutOfRangeError("name length", n, nameMinLength, nameMaxLength))
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewFieldNotValidErrorWithCause("email", errs.NewValueIsRequiredError("email"))
	}
	if len(email) > emailMaxLength {
		return errs.NewFieldNotValidErrorWithCause("email",
			fmt.Errorf("longer than %d characters", emailMaxLength))
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewFieldNotValidErrorWithCause("email", fmt.Errorf("%q is not an address", email))
	}
	u.email = email
	return nil
}
