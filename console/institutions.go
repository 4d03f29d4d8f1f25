package console

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// Institutions is the institution service. Institutions are derived from the
// names on users; the service only stores status records alongside and keeps
// them in sync through explicit reconciliation.
type Institutions struct {
	store *store.Store
	cache cache.CacheService
	keys  cache.KeySerializer
}

// NewInstitutions wires the institution service.
func NewInstitutions(s *store.Store, c cache.CacheService) *Institutions {
	return &Institutions{
		store: s,
		cache: c,
		keys:  cache.NewDefaultKeySerializer(),
	}
}

// WithUsers returns one card per institution with the grouped users and the
// stored status joined in, through the cache. The read depends on both the
// user and institution collections.
func (s *Institutions) WithUsers(ctx context.Context) ([]listview.InstitutionData, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("institutions.withUsers"),
		[]string{cachetag.Institutions, cachetag.Users},
		func(ctx context.Context) ([]listview.InstitutionData, error) {
			users, err := s.store.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			records, err := s.store.ListInstitutions(ctx)
			if err != nil {
				return nil, err
			}
			return listview.GroupInstitutions(users, records), nil
		})
}

// Stats returns the totals over the full card collection.
func (s *Institutions) Stats(ctx context.Context) (listview.InstitutionStats, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("institutions.stats"),
		[]string{cachetag.Institutions, cachetag.Users},
		func(ctx context.Context) (listview.InstitutionStats, error) {
			cards, err := s.WithUsers(ctx)
			if err != nil {
				return listview.InstitutionStats{}, err
			}
			return listview.ComputeInstitutionStats(cards), nil
		})
}

// Search returns up to ten institutions matching the query by name, for the
// notice targeting picker. Queries shorter than two characters return nothing.
func (s *Institutions) Search(ctx context.Context, query string) ([]model.Institution, error) {
	query, ok := normalizeQuery(query)
	if !ok {
		return []model.Institution{}, nil
	}
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("institutions.search", query),
		[]string{cachetag.Institutions},
		func(ctx context.Context) ([]model.Institution, error) {
			return s.store.SearchInstitutions(ctx, query, searchLimit)
		})
}

// SetStatus upserts the status record for the named institution.
func (s *Institutions) SetStatus(ctx context.Context, name string, status model.InstitutionStatus) error {
	if err := validation.Validate(string(status),
		validation.Required,
		validation.In(string(model.InstitutionActive), string(model.InstitutionInactive))); err != nil {
		return validation.Errors{"status": validation.NewError(
			"validation_institution_status", "status must be active or inactive")}
	}
	if err := s.store.UpsertInstitutionStatus(ctx, name, status); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.InstitutionWrite, "")
}

// Reconcile creates an active status record for every institution name that
// appears on a user but has none yet. The operation is idempotent: a second
// run finds nothing to create and invalidates nothing.
func (s *Institutions) Reconcile(ctx context.Context) error {
	created, err := s.reconcile(ctx)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	return invalidateAfter(ctx, s.cache, cachetag.InstitutionWrite, "")
}

// reconcileStore runs the reconciliation without its own invalidation, for
// callers whose mutation already invalidates the institution tag set.
func (s *Institutions) reconcileStore(ctx context.Context) error {
	_, err := s.reconcile(ctx)
	return err
}

func (s *Institutions) reconcile(ctx context.Context) (bool, error) {
	names, err := s.store.DistinctInstitutions(ctx)
	if err != nil {
		return false, err
	}
	existing, err := s.store.ListInstitutions(ctx)
	if err != nil {
		return false, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, record := range existing {
		known[record.Name] = struct{}{}
	}

	var missing []string
	for _, name := range names {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}
	if err := s.store.CreateMissingInstitutions(ctx, missing); err != nil {
		return false, err
	}
	return true, nil
}

// InstitutionView is the institution page hand-off.
type InstitutionView struct {
	Institutions []listview.InstitutionData `json:"institutions"`
	Stats        listview.InstitutionStats  `json:"stats"`
	Filter       listview.InstitutionFilter `json:"filter"`
	Shown        int                        `json:"shown"`
	Total        int                        `json:"total"`
}

// View assembles the institution page from the cached cards.
func (s *Institutions) View(ctx context.Context, filter listview.InstitutionFilter) (*InstitutionView, error) {
	cards, err := s.WithUsers(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.FilterInstitutions(cards, filter)
	return &InstitutionView{
		Institutions: filtered,
		Stats:        stats,
		Filter:       filter,
		Shown:        len(filtered),
		Total:        len(cards),
	}, nil
}
