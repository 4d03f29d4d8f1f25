package listview

import (
	"time"

	"github.com/goliatone/go-school-admin/model"
)

// UserFilter narrows the user list. Zero-value fields and the All sentinel
// place no constraint.
type UserFilter struct {
	// Search matches name, email or phone, case-insensitive, OR-combined.
	Search string

	// Role matches exactly; a model.Role value or All.
	Role string

	// Institution matches exactly; an institution name, None for users
	// without one, or All.
	Institution string

	// From/To bound CreatedAt inclusively. To covers its whole calendar day.
	From time.Time
	To   time.Time
}

// ActiveCount returns how many constraints the filter carries. The search box
// counts; All sentinels do not.
func (f UserFilter) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if !isAll(f.Role) {
		n++
	}
	if !isAll(f.Institution) {
		n++
	}
	if !f.From.IsZero() {
		n++
	}
	if !f.To.IsZero() {
		n++
	}
	return n
}

// Match reports whether a single user passes every populated constraint.
func (f UserFilter) Match(u model.User) bool {
	if f.Search != "" {
		if !containsFold(u.Name, f.Search) &&
			!containsFold(u.Email, f.Search) &&
			!containsFold(u.Phone, f.Search) {
			return false
		}
	}
	if !isAll(f.Role) && string(u.Role) != f.Role {
		return false
	}
	if !isAll(f.Institution) {
		if f.Institution == None {
			if u.Institution != "" {
				return false
			}
		} else if u.Institution != f.Institution {
			return false
		}
	}
	if !f.From.IsZero() && u.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && u.CreatedAt.After(endOfDay(f.To)) {
		return false
	}
	return true
}

// FilterUsers returns the users passing the filter, preserving input order.
func FilterUsers(users []model.User, f UserFilter) []model.User {
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

// UserStats are the per-role totals shown on the user page cards.
type UserStats struct {
	Total       int `json:"total"`
	SuperAdmins int `json:"superAdmins"`
	Admins      int `json:"admins"`
	Teachers    int `json:"teachers"`
	Students    int `json:"students"`
	Users       int `json:"users"`
}

// ComputeUserStats tallies the full collection by role.
func ComputeUserStats(users []model.User) UserStats {
	stats := UserStats{Total: len(users)}
	for _, u := range users {
		switch u.Role {
		case model.RoleSuperAdmin:
			stats.SuperAdmins++
		case model.RoleAdmin:
			stats.Admins++
		case model.RoleTeacher:
			stats.Teachers++
		case model.RoleStudent:
			stats.Students++
		case model.RoleUser:
			stats.Users++
		}
	}
	return stats
}
