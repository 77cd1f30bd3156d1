package commands

import (
	"errors"
	"slices"

	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers a customer or an employee. Extra roles, e.g.
// ADMIN, are granted on top of the kind's default role.
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	kind  user.Kind
	name  string
	email string
	roles []user.Role

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(kind user.Kind, name, email string, roles ...user.Role) (CreateUserCommand, error) {
	cmd := CreateUserCommand{
		name:  name,
		email: email,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKind(kind),
		cmd.setRoles(roles),
	); err != nil {
		return CreateUserCommand{}, err
	}

	return cmd, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) Kind() user.Kind    { return c.kind }
func (c CreateUserCommand) Name() string       { return c.name }
func (c CreateUserCommand) Email() string      { return c.email }
func (c CreateUserCommand) Roles() []user.Role { return slices.Clone(c.roles) }

func (c *CreateUserCommand) setKind(kind user.Kind) error {
	if err := kind.Validate(); err != nil {
		return errs.NewFieldNotValidErrorWithCause("kind", err)
	}
	c.kind = kind
	return nil
}

func (c *CreateUserCommand) setRoles(roles []user.Role) error {
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return errs.NewFieldNotValidErrorWithCause("roles", err)
		}
	}
	c.roles = slices.Clone(roles)
	return nil
}
