// Package userrepo persists customers and employees in the users table.
package userrepo

import (
	"time"

	"storehouse/internal/core/domain/model/user"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

type UserDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	Kind      string
	Name      string
	Email     string
	Roles     pq.StringArray `gorm:"type:text[]"`
	CreatedAt time.Time      `gorm:"autoCreateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:        int64(u.ID()),
		Kind:      u.Kind().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Roles:     lo.Map(u.Roles(), func(r user.Role, _ int) string { return r.String() }),
		CreatedAt: u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	kind, err := user.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	roles := lo.Map(dto.Roles, func(r string, _ int) user.Role { return user.Role(r) })

	return user.RestoreUser(user.ID(dto.ID), kind, dto.Name, dto.Email, roles, dto.CreatedAt.UTC())
}
