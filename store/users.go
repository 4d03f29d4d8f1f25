package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListUsers returns every user, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.NewSelect().
		Model(&users).
		Order("created_at DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	user := new(model.User)
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail fetches one user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	err := s.db.NewSelect().
		Model(user).
		Where("u.email = ?", email).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("user", email)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DistinctInstitutions returns every non-empty institution name that appears
// on a user, sorted ascending.
func (s *Store) DistinctInstitutions(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.NewSelect().
		Model((*model.User)(nil)).
		ColumnExpr("DISTINCT u.institution").
		Where("u.institution <> ''").
		OrderExpr("u.institution ASC").
		Scan(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SearchUsers returns up to limit users whose name matches the query
// case-insensitively, ordered by name.
func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]model.User, error) {
	var users []model.User
	if err := s.db.NewSelect().
		Model(&users).
		Where("lower(u.name) LIKE ? ESCAPE '\\'", likePattern(query)).
		Order("name ASC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts a user. The email must be unique; duplicates are rejected
// before the insert. A missing id and zero timestamps are filled in.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	taken, err := s.db.NewSelect().
		Model((*model.User)(nil)).
		Where("u.email = ?", user.Email).
		Exists(ctx)
	if err != nil {
		return err
	}
	if taken {
		return &DuplicateError{Entity: "user", Field: "email", Value: user.Email}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := nowUTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	return err
}

// UpdateUser overwrites a user row by primary key.
func (s *Store) UpdateUser(ctx context.Context, user *model.User) error {
	user.UpdatedAt = nowUTC()
	res, err := s.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "user", user.ID)
}

// UpdateUserRole changes only the role of a user.
func (s *Store) UpdateUserRole(ctx context.Context, id string, role model.Role) error {
	res, err := s.db.NewUpdate().
		Model((*model.User)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", nowUTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "user", id)
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*model.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "user", id)
}

// requireAffected converts a zero-row write result into a NotFoundError.
func requireAffected(res sql.Result, entity, id string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NotFound(entity, id)
	}
	return nil
}
