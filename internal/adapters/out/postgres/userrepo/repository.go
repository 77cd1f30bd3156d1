package userrepo

import (
	"context"
	"errors"
	"fmt"

	"storehouse/internal/adapters/out/postgres/paging"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

var columns = paging.Columns{
	filter.FieldID:        "id",
	filter.FieldName:      "name",
	filter.FieldEmail:     "email",
	filter.FieldKind:      "kind",
	filter.FieldCreatedAt: "created_at",
}

// GormUserRepository implements ports.UserRepository using GORM.
// Emails are unique regardless of case.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the user. The serial column assigns the identity unless the
// user carries one, in which case the sequence is moved past it.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", user.ErrUserAlreadyExists, aggregate.Email())
		}
		return err
	}

	if aggregate.ID() == 0 {
		if err := aggregate.AssignID(user.ID(dto.ID)); err != nil {
			return err
		}
	} else {
		err := db.Exec("SELECT setval(pg_get_serial_sequence('users', 'id'), GREATEST((SELECT MAX(id) FROM users), 1))").Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id user.ID) (*user.User, error) {
	return r.first(ctx, "user id", id, "id = ?", int64(id))
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "user email", email, "LOWER(email) = LOWER(?)", email)
}

func (r *GormUserRepository) FindByFilter(ctx context.Context, f filter.UserFilter) (filter.Page[*user.User], error) {
	dtos, total, err := paging.Find[UserDTO](ctx, r.db, f.Plan(), columns)
	if err != nil {
		return filter.Page[*user.User]{}, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return filter.Page[*user.User]{}, err
		}
		users = append(users, u)
	}

	return filter.NewPage(total, users), nil
}

func (r *GormUserRepository) first(ctx context.Context, param string, value any, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, value)
		}
		return nil, err
	}
	return toDomain(dto)
}
