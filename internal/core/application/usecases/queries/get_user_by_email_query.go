package queries

import (
	"errors"
	"strings"

	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/guard"
)

var ErrGetUserByEmailQueryIsNotConstructed = errors.New(
	"GetUserByEmailQuery must be created via NewGetUserByEmailQuery constructor",
)

type GetUserByEmailQuery struct {
	email string

	guard guard.ConstructorGuard
}

func NewGetUserByEmailQuery(email string) (GetUserByEmailQuery, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return GetUserByEmailQuery{}, errs.NewFieldNotValidErrorWithCause("email", errs.NewValueIsRequiredError("email"))
	}
	return GetUserByEmailQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserByEmailQuery) Validate() error {
	return q.guard.Validate(ErrGetUserByEmailQueryIsNotConstructed)
}

func (q GetUserByEmailQuery) Email() string {
	return q.email
}
