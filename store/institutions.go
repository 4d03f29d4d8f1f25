package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListInstitutions returns every institution record, name ascending.
func (s *Store) ListInstitutions(ctx context.Context) ([]model.Institution, error) {
	var institutions []model.Institution
	if err := s.db.NewSelect().
		Model(&institutions).
		Order("name ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return institutions, nil
}

// GetInstitutionByName fetches one institution record by its unique name.
func (s *Store) GetInstitutionByName(ctx context.Context, name string) (*model.Institution, error) {
	institution := new(model.Institution)
	err := s.db.NewSelect().
		Model(institution).
		Where("i.name = ?", name).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("institution", name)
	}
	if err != nil {
		return nil, err
	}
	return institution, nil
}

// UpsertInstitutionStatus sets the status for the named institution, creating
// the record when it does not exist yet.
func (s *Store) UpsertInstitutionStatus(ctx context.Context, name string, status model.InstitutionStatus) error {
	institution := &model.Institution{
		ID:     uuid.NewString(),
		Name:   name,
		Status: status,
	}
	_, err := s.db.NewInsert().
		Model(institution).
		On("CONFLICT (name) DO UPDATE").
		Set("status = EXCLUDED.status").
		Exec(ctx)
	return err
}

// CreateMissingInstitutions inserts an active institution record for every
// name that does not have one yet. Existing records keep their status, which
// makes the operation idempotent.
func (s *Store) CreateMissingInstitutions(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	records := make([]model.Institution, 0, len(names))
	for _, name := range names {
		records = append(records, model.Institution{
			ID:     uuid.NewString(),
			Name:   name,
			Status: model.InstitutionActive,
		})
	}
	_, err := s.db.NewInsert().
		Model(&records).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	return err
}

// SearchInstitutions returns up to limit institutions whose name matches the
// query case-insensitively, ordered by name.
func (s *Store) SearchInstitutions(ctx context.Context, query string, limit int) ([]model.Institution, error) {
	var institutions []model.Institution
	if err := s.db.NewSelect().
		Model(&institutions).
		Where("lower(i.name) LIKE ? ESCAPE '\\'", likePattern(query)).
		Order("name ASC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, err
	}
	return institutions, nil
}
