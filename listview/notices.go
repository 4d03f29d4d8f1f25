package listview

import (
	"github.com/goliatone/go-school-admin/model"
)

// NoticeFilter narrows the notice list.
type NoticeFilter struct {
	// Search matches title or content, case-insensitive, OR-combined.
	Search string

	// Priority matches exactly; a model.Priority value or All.
	Priority string

	// Target is a compound value: All for no constraint, "all" for notices
	// addressed to everyone, "user" or "institution" for those target types,
	// or a role value for role-targeted notices with that role.
	Target string

	// Published is "published", "draft" or All.
	Published string
}

// Published filter values besides All.
const (
	PublishedOnly = "published"
	DraftOnly     = "draft"
)

// ActiveCount returns how many constraints the filter carries.
func (f NoticeFilter) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if !isAll(f.Priority) {
		n++
	}
	if !isAll(f.Target) {
		n++
	}
	if !isAll(f.Published) {
		n++
	}
	return n
}

// Match reports whether a single notice passes every populated constraint.
func (f NoticeFilter) Match(n model.Notice) bool {
	if f.Search != "" {
		if !containsFold(n.Title, f.Search) && !containsFold(n.Content, f.Search) {
			return false
		}
	}
	if !isAll(f.Priority) && string(n.Priority) != f.Priority {
		return false
	}
	if !isAll(f.Target) && !matchTarget(n, f.Target) {
		return false
	}
	switch f.Published {
	case PublishedOnly:
		if !n.IsPublished {
			return false
		}
	case DraftOnly:
		if n.IsPublished {
			return false
		}
	}
	return true
}

// matchTarget resolves the compound target value: the broad audience kinds
// select by target type alone, a role value selects role-targeted notices
// carrying that role.
func matchTarget(n model.Notice, target string) bool {
	switch target {
	case string(model.TargetAll):
		return n.TargetType == model.TargetAll
	case string(model.TargetUser):
		return n.TargetType == model.TargetUser
	case string(model.TargetInstitution):
		return n.TargetType == model.TargetInstitution
	default:
		return n.TargetType == model.TargetRole && string(n.TargetRole) == target
	}
}

// FilterNotices returns the notices passing the filter, preserving input order.
func FilterNotices(notices []model.Notice, f NoticeFilter) []model.Notice {
	out := make([]model.Notice, 0, len(notices))
	for _, n := range notices {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// NoticeStats are the totals shown on the notice page cards.
type NoticeStats struct {
	Total        int `json:"total"`
	Published    int `json:"published"`
	Draft        int `json:"draft"`
	HighPriority int `json:"highPriority"`
	Urgent       int `json:"urgent"`
}

// ComputeNoticeStats tallies the full collection.
func ComputeNoticeStats(notices []model.Notice) NoticeStats {
	stats := NoticeStats{Total: len(notices)}
	for _, n := range notices {
		if n.IsPublished {
			stats.Published++
		} else {
			stats.Draft++
		}
		switch n.Priority {
		case model.PriorityHigh:
			stats.HighPriority++
		case model.PriorityUrgent:
			stats.Urgent++
		}
	}
	return stats
}
