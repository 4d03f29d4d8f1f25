package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListSubscriptions returns every subscription with its institution and plan
// joined, newest first.
func (s *Store) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	var subscriptions []model.Subscription
	if err := s.db.NewSelect().
		Model(&subscriptions).
		Relation("Institution").
		Relation("Plan").
		Order("created_at DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// GetSubscription fetches one subscription by id with its relations joined.
func (s *Store) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	subscription := new(model.Subscription)
	err := s.db.NewSelect().
		Model(subscription).
		Relation("Institution").
		Relation("Plan").
		Where("s.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("subscription", id)
	}
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// DistinctSubscribedInstitutionIDs returns the ids of institutions that hold
// at least one subscription.
func (s *Store) DistinctSubscribedInstitutionIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.NewSelect().
		Model((*model.Subscription)(nil)).
		ColumnExpr("DISTINCT s.institution_id").
		Scan(ctx, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateSubscription inserts a subscription. A missing id and zero CreatedAt
// are filled in.
func (s *Store) CreateSubscription(ctx context.Context, subscription *model.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = nowUTC()
	}
	_, err := s.db.NewInsert().Model(subscription).Exec(ctx)
	return err
}

// SetSubscriptionPayment updates the payment status and PaidAt of one
// subscription in a single write.
func (s *Store) SetSubscriptionPayment(ctx context.Context, id string, status model.PaymentStatus, paidAt *time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*model.Subscription)(nil)).
		Set("payment_status = ?", status).
		Set("paid_at = ?", paidAt).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "subscription", id)
}

// DeleteSubscription removes a subscription by id.
func (s *Store) DeleteSubscription(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*model.Subscription)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "subscription", id)
}
