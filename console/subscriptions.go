package console

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// Subscriptions is the billing service. Subscription reads join the
// institution and plan, so they depend on those collections' tags as well.
type Subscriptions struct {
	store *store.Store
	cache cache.CacheService
	keys  cache.KeySerializer
	now   func() time.Time
}

// NewSubscriptions wires the subscription service.
func NewSubscriptions(s *store.Store, c cache.CacheService) *Subscriptions {
	return &Subscriptions{
		store: s,
		cache: c,
		keys:  cache.NewDefaultKeySerializer(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// All returns every subscription with its institution and plan joined,
// newest first, through the cache.
func (s *Subscriptions) All(ctx context.Context) ([]model.Subscription, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("subscriptions.all"),
		[]string{cachetag.Subscriptions, cachetag.Institutions, cachetag.Plans},
		func(ctx context.Context) ([]model.Subscription, error) {
			return s.store.ListSubscriptions(ctx)
		})
}

// Stats returns the payment totals over the full collection. The institution
// count covers all institutions, subscribed or not.
func (s *Subscriptions) Stats(ctx context.Context) (listview.SubscriptionStats, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("subscriptions.stats"),
		[]string{cachetag.Subscriptions, cachetag.Institutions, cachetag.Plans},
		func(ctx context.Context) (listview.SubscriptionStats, error) {
			subs, err := s.All(ctx)
			if err != nil {
				return listview.SubscriptionStats{}, err
			}
			institutions, err := s.store.ListInstitutions(ctx)
			if err != nil {
				return listview.SubscriptionStats{}, err
			}
			return listview.ComputeSubscriptionStats(subs, len(institutions)), nil
		})
}

// SubscribedInstitutionIDs returns the ids of institutions holding at least
// one subscription, for the create form to exclude.
func (s *Subscriptions) SubscribedInstitutionIDs(ctx context.Context) ([]string, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("subscriptions.institutionIDs"),
		[]string{cachetag.Subscriptions},
		func(ctx context.Context) ([]string, error) {
			return s.store.DistinctSubscribedInstitutionIDs(ctx)
		})
}

// Create inserts a subscription. PaidAt is derived from the payment status:
// set to now when the subscription is created already paid, nil otherwise.
func (s *Subscriptions) Create(ctx context.Context, sub *model.Subscription) error {
	if sub.PaymentStatus == model.PaymentPaid {
		if sub.PaidAt == nil {
			now := s.now()
			sub.PaidAt = &now
		}
	} else {
		sub.PaidAt = nil
	}

	if err := sub.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.SubscriptionWrite, sub.ID)
}

// SetPaymentStatus moves a subscription between payment states. Entering paid
// stamps PaidAt with now; leaving paid clears it.
func (s *Subscriptions) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	if !status.Valid() {
		return validation.Errors{"paymentStatus": validation.NewError(
			"validation_payment_status", "unknown payment status")}
	}

	var paidAt *time.Time
	if status == model.PaymentPaid {
		now := s.now()
		paidAt = &now
	}

	if err := s.store.SetSubscriptionPayment(ctx, id, status, paidAt); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.SubscriptionWrite, id)
}

// Delete removes a subscription.
func (s *Subscriptions) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteSubscription(ctx, id); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.SubscriptionWrite, id)
}

// SubscriptionView is the billing page hand-off.
type SubscriptionView struct {
	Subscriptions []model.Subscription        `json:"subscriptions"`
	Stats         listview.SubscriptionStats  `json:"stats"`
	Filter        listview.SubscriptionFilter `json:"filter"`
	Shown         int                         `json:"shown"`
	Total         int                         `json:"total"`
}

// View assembles the billing page from the cached collection.
func (s *Subscriptions) View(ctx context.Context, filter listview.SubscriptionFilter) (*SubscriptionView, error) {
	subs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listview.FilterSubscriptions(subs, filter)
	return &SubscriptionView{
		Subscriptions: filtered,
		Stats:         stats,
		Filter:        filter,
		Shown:         len(filtered),
		Total:         len(subs),
	}, nil
}
