package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListNotices returns every notice with target user and institution joined,
// newest first.
func (s *Store) ListNotices(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	if err := s.db.NewSelect().
		Model(&notices).
		Relation("TargetUser").
		Relation("TargetInstitution").
		Order("n.created_at DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return notices, nil
}

// GetNotice fetches one notice by id with its target relations joined.
func (s *Store) GetNotice(ctx context.Context, id string) (*model.Notice, error) {
	notice := new(model.Notice)
	err := s.db.NewSelect().
		Model(notice).
		Relation("TargetUser").
		Relation("TargetInstitution").
		Where("n.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("notice", id)
	}
	if err != nil {
		return nil, err
	}
	return notice, nil
}

// CreateNotice inserts a notice. A missing id and zero CreatedAt are filled in.
func (s *Store) CreateNotice(ctx context.Context, notice *model.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = nowUTC()
	}
	_, err := s.db.NewInsert().Model(notice).Exec(ctx)
	return err
}

// UpdateNotice overwrites a notice row by primary key. The joined relations
// are ignored on write.
func (s *Store) UpdateNotice(ctx context.Context, notice *model.Notice) error {
	res, err := s.db.NewUpdate().
		Model(notice).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "notice", notice.ID)
}

// SetNoticePublishState flips the publish flag and PublishedAt of one notice
// in a single write.
func (s *Store) SetNoticePublishState(ctx context.Context, id string, published bool, publishedAt *time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*model.Notice)(nil)).
		Set("is_published = ?", published).
		Set("published_at = ?", publishedAt).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "notice", id)
}

// DeleteNotice removes a notice by id.
func (s *Store) DeleteNotice(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*model.Notice)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "notice", id)
}
