package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListPlans returns every plan, cheapest first.
func (s *Store) ListPlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := s.db.NewSelect().
		Model(&plans).
		Order("price ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return plans, nil
}

// ListActivePlans returns the plans available for new subscriptions, cheapest
// first.
func (s *Store) ListActivePlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := s.db.NewSelect().
		Model(&plans).
		Where("p.is_active = ?", true).
		Order("price ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlan fetches one plan by id.
func (s *Store) GetPlan(ctx context.Context, id string) (*model.Plan, error) {
	plan := new(model.Plan)
	err := s.db.NewSelect().
		Model(plan).
		Where("p.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("plan", id)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// CreatePlan inserts a plan. The name must be unique; duplicates are rejected
// before the insert.
func (s *Store) CreatePlan(ctx context.Context, plan *model.Plan) error {
	taken, err := s.db.NewSelect().
		Model((*model.Plan)(nil)).
		Where("p.name = ?", plan.Name).
		Exists(ctx)
	if err != nil {
		return err
	}
	if taken {
		return &DuplicateError{Entity: "plan", Field: "name", Value: plan.Name}
	}

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	_, err = s.db.NewInsert().Model(plan).Exec(ctx)
	return err
}

// UpdatePlan overwrites a plan row by primary key.
func (s *Store) UpdatePlan(ctx context.Context, plan *model.Plan) error {
	res, err := s.db.NewUpdate().
		Model(plan).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "plan", plan.ID)
}

// DeletePlan removes a plan. When any subscription still references the plan
// the delete performs no write and reports a referential conflict.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	references, err := s.CountSubscriptionsForPlan(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return &ReferentialConflictError{
			Entity:       "plan",
			ID:           id,
			ReferencedBy: "subscription",
			References:   references,
		}
	}

	res, err := s.db.NewDelete().
		Model((*model.Plan)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "plan", id)
}

// CountSubscriptionsForPlan counts the subscriptions referencing a plan.
func (s *Store) CountSubscriptionsForPlan(ctx context.Context, planID string) (int, error) {
	return s.db.NewSelect().
		Model((*model.Subscription)(nil)).
		Where("s.plan_id = ?", planID).
		Count(ctx)
}
