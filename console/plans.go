package console

import (
	"context"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// Plans is the subscription plan service.
type Plans struct {
	store *store.Store
	cache cache.CacheService
	keys  cache.KeySerializer
}

// NewPlans wires the plan service.
func NewPlans(s *store.Store, c cache.CacheService) *Plans {
	return &Plans{
		store: s,
		cache: c,
		keys:  cache.NewDefaultKeySerializer(),
	}
}

// All returns every plan, cheapest first, through the cache.
func (s *Plans) All(ctx context.Context) ([]model.Plan, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("plans.all"),
		[]string{cachetag.Plans},
		func(ctx context.Context) ([]model.Plan, error) {
			return s.store.ListPlans(ctx)
		})
}

// Active returns the plans open for new subscriptions, through the cache.
func (s *Plans) Active(ctx context.Context) ([]model.Plan, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("plans.active"),
		[]string{cachetag.Plans},
		func(ctx context.Context) ([]model.Plan, error) {
			return s.store.ListActivePlans(ctx)
		})
}

// ByID returns one plan through the cache.
func (s *Plans) ByID(ctx context.Context, id string) (*model.Plan, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("plans.byID", id),
		[]string{cachetag.Plans, cachetag.Plan(id)},
		func(ctx context.Context) (*model.Plan, error) {
			return s.store.GetPlan(ctx, id)
		})
}

// Create validates and inserts a plan. The name must be unused.
func (s *Plans) Create(ctx context.Context, plan *model.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.PlanWrite, plan.ID)
}

// Update overwrites a plan row.
func (s *Plans) Update(ctx context.Context, plan *model.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdatePlan(ctx, plan); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.PlanWrite, plan.ID)
}

// Delete removes a plan. Plans referenced by any subscription cannot be
// deleted; the store reports a referential conflict and changes nothing.
func (s *Plans) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePlan(ctx, id); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.PlanWrite, id)
}

// ToggleActive flips whether a plan accepts new subscriptions and returns the
// updated plan.
func (s *Plans) ToggleActive(ctx context.Context, id string) (*model.Plan, error) {
	plan, err := s.store.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.IsActive = !plan.IsActive
	if err := s.store.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	if err := invalidateAfter(ctx, s.cache, cachetag.PlanWrite, id); err != nil {
		return nil, err
	}
	return plan, nil
}
