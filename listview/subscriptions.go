package listview

import (
	"github.com/goliatone/go-school-admin/model"
)

// SubscriptionFilter narrows the subscription list.
type SubscriptionFilter struct {
	// Search matches the joined institution name, case-insensitive.
	Search string

	// Status matches exactly; a model.PaymentStatus value or All.
	Status string

	// PlanID matches exactly or All.
	PlanID string

	// Cycle matches exactly; a model.BillingCycle value or All.
	Cycle string
}

// ActiveCount returns how many constraints the filter carries.
func (f SubscriptionFilter) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if !isAll(f.Status) {
		n++
	}
	if !isAll(f.PlanID) {
		n++
	}
	if !isAll(f.Cycle) {
		n++
	}
	return n
}

// Match reports whether a single subscription passes every populated
// constraint. A search term never matches a row whose institution failed to
// join.
func (f SubscriptionFilter) Match(s model.Subscription) bool {
	if f.Search != "" {
		if s.Institution == nil || !containsFold(s.Institution.Name, f.Search) {
			return false
		}
	}
	if !isAll(f.Status) && string(s.PaymentStatus) != f.Status {
		return false
	}
	if !isAll(f.PlanID) && s.PlanID != f.PlanID {
		return false
	}
	if !isAll(f.Cycle) && string(s.BillingCycle) != f.Cycle {
		return false
	}
	return true
}

// FilterSubscriptions returns the subscriptions passing the filter,
// preserving input order.
func FilterSubscriptions(subs []model.Subscription, f SubscriptionFilter) []model.Subscription {
	out := make([]model.Subscription, 0, len(subs))
	for _, s := range subs {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// SubscriptionStats are the totals shown on the subscription page cards.
// Paid + Due + Overdue always equals Total. TotalInstitutions is supplied by
// the caller since it counts all institutions, not just subscribed ones.
type SubscriptionStats struct {
	Total             int     `json:"total"`
	Paid              int     `json:"paid"`
	Due               int     `json:"due"`
	Overdue           int     `json:"overdue"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PaidAmount        float64 `json:"paidAmount"`
	DueAmount         float64 `json:"dueAmount"`
	TotalInstitutions int     `json:"totalInstitutions"`
}

// ComputeSubscriptionStats tallies the full collection. Overdue amounts count
// toward DueAmount since they are still owed.
func ComputeSubscriptionStats(subs []model.Subscription, totalInstitutions int) SubscriptionStats {
	stats := SubscriptionStats{
		Total:             len(subs),
		TotalInstitutions: totalInstitutions,
	}
	for _, s := range subs {
		stats.TotalRevenue += s.Amount
		switch s.PaymentStatus {
		case model.PaymentPaid:
			stats.Paid++
			stats.PaidAmount += s.Amount
		case model.PaymentOverdue:
			stats.Overdue++
			stats.DueAmount += s.Amount
		default:
			stats.Due++
			stats.DueAmount += s.Amount
		}
	}
	return stats
}
