// Package cachetag is the central registry of cache tags. Cached reads declare
// the tags they depend on; mutations ask AffectedBy for the set of tags to
// invalidate. Keeping every tag in one place keeps the namespace collision-free
// and makes the read/write pairing auditable.
package cachetag

// Static collection tags.
const (
	Users            = "users"
	UserStats        = "users-stats"
	UserInstitutions = "users-institutions"
	Institutions     = "institutions"
	Plans            = "plans"
	Subscriptions    = "subscriptions"
	Notices          = "notices"
	Attendances      = "attendances"
)

// User returns the per-entity tag for one user.
func User(id string) string { return "user-" + id }

// Institution returns the per-entity tag for one institution.
func Institution(id string) string { return "institution-" + id }

// Plan returns the per-entity tag for one plan.
func Plan(id string) string { return "plan-" + id }

// Subscription returns the per-entity tag for one subscription.
func Subscription(id string) string { return "subscription-" + id }

// Notice returns the per-entity tag for one notice.
func Notice(id string) string { return "notice-" + id }

// Attendance returns the per-entity tag for one attendance record.
func Attendance(id string) string { return "attendance-" + id }

// Mutation identifies a kind of write for invalidation purposes.
type Mutation int

const (
	UserWrite Mutation = iota
	UserDelete
	InstitutionWrite
	PlanWrite
	SubscriptionWrite
	NoticeWrite
	AttendanceWrite
)

// AffectedBy returns the deterministic set of tags that must be invalidated
// for a mutation of the given kind touching the entity with the given id
// (empty id for bulk or id-less writes). The set is a superset of every cached
// read that depends on the mutated data: over-invalidation only costs a
// recomputation, under-invalidation would serve stale reads.
func AffectedBy(kind Mutation, id string) []string {
	var tags []string
	switch kind {
	case UserWrite:
		tags = []string{Users, UserStats, UserInstitutions, Institutions}
		if id != "" {
			tags = append(tags, User(id))
		}
	case UserDelete:
		// Attendance rows reference the user transitively, so a user delete
		// invalidates the attendance tag set as well.
		tags = append(AffectedBy(UserWrite, id), Attendances)
	case InstitutionWrite:
		tags = []string{Institutions, Users}
		if id != "" {
			tags = append(tags, Institution(id))
		}
	case PlanWrite:
		tags = []string{Plans}
		if id != "" {
			tags = append(tags, Plan(id))
		}
	case SubscriptionWrite:
		tags = []string{Subscriptions}
		if id != "" {
			tags = append(tags, Subscription(id))
		}
	case NoticeWrite:
		tags = []string{Notices}
		if id != "" {
			tags = append(tags, Notice(id))
		}
	case AttendanceWrite:
		tags = []string{Attendances}
		if id != "" {
			tags = append(tags, Attendance(id))
		}
	}
	return tags
}
