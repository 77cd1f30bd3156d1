package commands

import (
	"context"
	"errors"
	"fmt"

	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
)

type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory) CreateUserCommandHandler {
	return CreateUserCommandHandler{uowFactory: uowFactory}
}

// Handle validates name and email, rejects a taken email with
// user.ErrUserAlreadyExists and returns the stored user with its identity.
func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := user.NewUser(cmd.Kind(), cmd.Name(), cmd.Email())
	if err != nil {
		return nil, err
	}
	for _, r := range cmd.Roles() {
		if err = created.GrantRole(r); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	_, err = userRepo.FindByEmail(ctx, created.Email())
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", user.ErrUserAlreadyExists, created.Email())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = userRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
