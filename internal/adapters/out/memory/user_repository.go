package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/samber/lo"
)

var userFields = Fields[*user.User]{
	filter.FieldID:        func(u *user.User) any { return int64(u.ID()) },
	filter.FieldName:      func(u *user.User) any { return u.Name() },
	filter.FieldEmail:     func(u *user.User) any { return u.Email() },
	filter.FieldKind:      func(u *user.User) any { return u.Kind().String() },
	filter.FieldCreatedAt: func(u *user.User) any { return u.CreatedAt() },
}

// UserRepository implements ports.UserRepository over a Store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Add stores a copy of aggregate. Identities are handed out sequentially from 1
// unless the user already carries one.
func (r *UserRepository) Add(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if slices.ContainsFunc(r.store.users, func(u *user.User) bool {
		return strings.EqualFold(u.Email(), aggregate.Email()) || (aggregate.ID() != 0 && u.ID() == aggregate.ID())
	}) {
		return fmt.Errorf("%w: %s", user.ErrUserAlreadyExists, aggregate.Email())
	}

	if aggregate.ID() == 0 {
		if err := aggregate.AssignID(r.store.nextUserID); err != nil {
			return err
		}
	}
	r.store.nextUserID = max(r.store.nextUserID, aggregate.ID()+1)

	r.store.users = append(r.store.users, cloneUser(aggregate))
	return nil
}

func (r *UserRepository) Get(_ context.Context, id user.ID) (*user.User, error) {
	return r.find("id", id, func(u *user.User) bool { return u.ID() == id })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find("email", email, func(u *user.User) bool { return strings.EqualFold(u.Email(), email) })
}

func (r *UserRepository) FindByFilter(_ context.Context, f filter.UserFilter) (filter.Page[*user.User], error) {
	r.store.mu.RLock()
	page, err := Apply(r.store.users, f.Plan(), userFields)
	r.store.mu.RUnlock()
	if err != nil {
		return filter.Page[*user.User]{}, err
	}

	return filter.NewPage(page.NumberOfRows, lo.Map(page.Rows, func(u *user.User, _ int) *user.User {
		return cloneUser(u)
	})), nil
}

func (r *UserRepository) find(param string, value any, match func(*user.User) bool) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := lo.Find(r.store.users, match)
	if !ok {
		return nil, errs.NewObjectNotFoundError("user "+param, value)
	}
	return cloneUser(u), nil
}
