package console

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// minPasswordLength is the shortest password accepted on account creation.
const minPasswordLength = 6

// Users is the user service. User writes trigger institution reconciliation
// so every institution name on a user has a status record.
type Users struct {
	store        *store.Store
	cache        cache.CacheService
	keys         cache.KeySerializer
	institutions *Institutions
}

// NewUsers wires the user service.
func NewUsers(s *store.Store, c cache.CacheService, institutions *Institutions) *Users {
	return &Users{
		store:        s,
		cache:        c,
		keys:         cache.NewDefaultKeySerializer(),
		institutions: institutions,
	}
}

// All returns every user, newest first, through the cache.
func (s *Users) All(ctx context.Context) ([]model.User, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.all"),
		[]string{cachetag.Users},
		func(ctx context.Context) ([]model.User, error) {
			return s.store.ListUsers(ctx)
		})
}

// ByID returns one user through the cache.
func (s *Users) ByID(ctx context.Context, id string) (*model.User, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.byID", id),
		[]string{cachetag.Users, cachetag.User(id)},
		func(ctx context.Context) (*model.User, error) {
			return s.store.GetUser(ctx, id)
		})
}

// ByEmail returns one user by email through the cache.
func (s *Users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.byEmail", email),
		[]string{cachetag.Users},
		func(ctx context.Context) (*model.User, error) {
			return s.store.GetUserByEmail(ctx, email)
		})
}

// UniqueInstitutions returns the distinct institution names appearing on
// users, sorted, through the cache.
func (s *Users) UniqueInstitutions(ctx context.Context) ([]string, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.institutions"),
		[]string{cachetag.UserInstitutions},
		func(ctx context.Context) ([]string, error) {
			return s.store.DistinctInstitutions(ctx)
		})
}

// Stats returns the per-role totals over the full user collection.
func (s *Users) Stats(ctx context.Context) (listview.UserStats, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.stats"),
		[]string{cachetag.UserStats},
		func(ctx context.Context) (listview.UserStats, error) {
			users, err := s.store.ListUsers(ctx)
			if err != nil {
				return listview.UserStats{}, err
			}
			return listview.ComputeUserStats(users), nil
		})
}

// Search returns up to ten users matching the query by name, for the notice
// targeting picker. Queries shorter than two characters return nothing.
func (s *Users) Search(ctx context.Context, query string) ([]model.User, error) {
	query, ok := normalizeQuery(query)
	if !ok {
		return []model.User{}, nil
	}
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("users.search", query),
		[]string{cachetag.Users},
		func(ctx context.Context) ([]model.User, error) {
			return s.store.SearchUsers(ctx, query, searchLimit)
		})
}

// CreateUserInput carries the fields accepted on account creation.
type CreateUserInput struct {
	Name        string
	Email       string
	Phone       string
	Institution string
	Role        model.Role
	Password    string
}

// Create validates the input, hashes the password and inserts the account.
// The email must be unused. On success the institution set is reconciled and
// the user tag set invalidated.
func (s *Users) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, validation.Errors{"password": validation.NewError(
			"validation_password", "password must be at least 6 characters")}
	}

	user := &model.User{
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Institution: input.Institution,
		Role:        input.Role,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	// The insert is committed, so the tag set is invalidated even if
	// reconciliation fails; otherwise cached reads would go stale.
	reconcileErr := s.institutions.reconcileStore(ctx)
	if err := invalidateAfter(ctx, s.cache, cachetag.UserWrite, user.ID); err != nil {
		return nil, err
	}
	if reconcileErr != nil {
		return nil, reconcileErr
	}
	return user, nil
}

// Update overwrites a user row and reconciles institutions, since the write
// may have introduced a new institution name.
func (s *Users) Update(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}
	reconcileErr := s.institutions.reconcileStore(ctx)
	if err := invalidateAfter(ctx, s.cache, cachetag.UserWrite, user.ID); err != nil {
		return err
	}
	return reconcileErr
}

// UpdateRole changes only a user's role.
func (s *Users) UpdateRole(ctx context.Context, id string, role model.Role) error {
	if !role.Valid() {
		return validation.Errors{"role": validation.NewError(
			"validation_role", "unknown role")}
	}
	if err := s.store.UpdateUserRole(ctx, id, role); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.UserWrite, id)
}

// Delete removes a user. The attendance tag set is invalidated too since
// attendance rows reference the user.
func (s *Users) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.UserDelete, id)
}

// VerifyPassword checks a candidate password against the stored hash.
func (s *Users) VerifyPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// UserView is the user page hand-off: the filtered rows plus full-collection
// stats and the filter state that produced the view.
type UserView struct {
	Users  []model.User        `json:"users"`
	Stats  listview.UserStats  `json:"stats"`
	Filter listview.UserFilter `json:"filter"`
	Shown  int                 `json:"shown"`
	Total  int                 `json:"total"`
}

// View assembles the user page from the cached collection.
func (s *Users) View(ctx context.Context, filter listview.UserFilter) (*UserView, error) {
	users, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.FilterUsers(users, filter)
	return &UserView{
		Users:  filtered,
		Stats:  stats,
		Filter: filter,
		Shown:  len(filtered),
		Total:  len(users),
	}, nil
}
