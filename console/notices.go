package console

import (
	"context"
	"time"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// Notices is the announcement service.
type Notices struct {
	store *store.Store
	cache cache.CacheService
	keys  cache.KeySerializer
	now   func() time.Time
}

// NewNotices wires the notice service.
func NewNotices(s *store.Store, c cache.CacheService) *Notices {
	return &Notices{
		store: s,
		cache: c,
		keys:  cache.NewDefaultKeySerializer(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// All returns every notice with its target user and institution joined,
// newest first, through the cache.
func (s *Notices) All(ctx context.Context) ([]model.Notice, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("notices.all"),
		[]string{cachetag.Notices, cachetag.Users, cachetag.Institutions},
		func(ctx context.Context) ([]model.Notice, error) {
			return s.store.ListNotices(ctx)
		})
}

// Stats returns the publish and priority totals over the full collection.
func (s *Notices) Stats(ctx context.Context) (listview.NoticeStats, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("notices.stats"),
		[]string{cachetag.Notices},
		func(ctx context.Context) (listview.NoticeStats, error) {
			notices, err := s.store.ListNotices(ctx)
			if err != nil {
				return listview.NoticeStats{}, err
			}
			return listview.ComputeNoticeStats(notices), nil
		})
}

// Create validates and inserts a notice. A notice created as published gets
// PublishedAt stamped with now unless the caller provided one.
func (s *Notices) Create(ctx context.Context, notice *model.Notice) error {
	if notice.IsPublished && notice.PublishedAt == nil {
		now := s.now()
		notice.PublishedAt = &now
	}
	if !notice.IsPublished {
		notice.PublishedAt = nil
	}

	if err := notice.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateNotice(ctx, notice); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.NoticeWrite, notice.ID)
}

// Update overwrites a notice row, revalidating the target variant and the
// publish pairing.
func (s *Notices) Update(ctx context.Context, notice *model.Notice) error {
	if err := notice.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateNotice(ctx, notice); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.NoticeWrite, notice.ID)
}

// TogglePublish flips a notice between draft and published. Publishing stamps
// PublishedAt with now; unpublishing clears it. Returns the updated notice.
func (s *Notices) TogglePublish(ctx context.Context, id string) (*model.Notice, error) {
	notice, err := s.store.GetNotice(ctx, id)
	if err != nil {
		return nil, err
	}

	if notice.IsPublished {
		notice.IsPublished = false
		notice.PublishedAt = nil
	} else {
		now := s.now()
		notice.IsPublished = true
		notice.PublishedAt = &now
	}

	if err := s.store.SetNoticePublishState(ctx, id, notice.IsPublished, notice.PublishedAt); err != nil {
		return nil, err
	}
	if err := invalidateAfter(ctx, s.cache, cachetag.NoticeWrite, id); err != nil {
		return nil, err
	}
	return notice, nil
}

// Delete removes a notice.
func (s *Notices) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteNotice(ctx, id); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.NoticeWrite, id)
}

// NoticeView is the notice page hand-off.
type NoticeView struct {
	Notices []model.Notice        `json:"notices"`
	Stats   listview.NoticeStats  `json:"stats"`
	Filter  listview.NoticeFilter `json:"filter"`
	Shown   int                   `json:"shown"`
	Total   int                   `json:"total"`
}

// View assembles the notice page from the cached collection.
func (s *Notices) View(ctx context.Context, filter listview.NoticeFilter) (*NoticeView, error) {
	notices, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.FilterNotices(notices, filter)
	return &NoticeView{
		Notices: filtered,
		Stats:   stats,
		Filter:  filter,
		Shown:   len(filtered),
		Total:   len(notices),
	}, nil
}
