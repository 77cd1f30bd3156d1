package queries

import (
	"context"

	"storehouse/internal/core/domain/model/user"
)

type GetUserByEmailQueryHandler struct {
	users UserReader
}

func NewGetUserByEmailQueryHandler(users UserReader) GetUserByEmailQueryHandler {
	return GetUserByEmailQueryHandler{users: users}
}

// Handle returns an error wrapping errs.ErrObjectNotFound for an unknown email.
func (h GetUserByEmailQueryHandler) Handle(ctx context.Context, query GetUserByEmailQuery) (*user.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.users.FindByEmail(ctx, query.Email())
}
