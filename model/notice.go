package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Priority ranks a notice.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// TargetType discriminates who a notice is addressed to.
type TargetType string

const (
	TargetAll         TargetType = "all"
	TargetRole        TargetType = "role"
	TargetUser        TargetType = "user"
	TargetInstitution TargetType = "institution"
)

// NoticeTarget is the audience of a notice as a variant: exactly one shape is
// populated per type. Construct values through the Target* helpers so the
// "exactly one populated" rule holds by construction.
type NoticeTarget struct {
	Type          TargetType
	Role          Role
	UserID        string
	InstitutionID string
}

// TargetEveryone addresses every user.
func TargetEveryone() NoticeTarget { return NoticeTarget{Type: TargetAll} }

// TargetByRole addresses every user holding the given role.
func TargetByRole(r Role) NoticeTarget { return NoticeTarget{Type: TargetRole, Role: r} }

// TargetByUser addresses a single user.
func TargetByUser(id string) NoticeTarget { return NoticeTarget{Type: TargetUser, UserID: id} }

// TargetByInstitution addresses every user of one institution.
func TargetByInstitution(id string) NoticeTarget {
	return NoticeTarget{Type: TargetInstitution, InstitutionID: id}
}

// Validate checks that the populated fields match the discriminator.
func (t NoticeTarget) Validate() error {
	bad := func(msg string) error {
		return validation.Errors{"target": validation.NewError("validation_notice_target", msg)}
	}
	switch t.Type {
	case TargetAll:
		if t.Role != "" || t.UserID != "" || t.InstitutionID != "" {
			return bad("target 'all' must not carry a role, user or institution")
		}
	case TargetRole:
		if !t.Role.Valid() || t.UserID != "" || t.InstitutionID != "" {
			return bad("target 'role' requires a valid role and nothing else")
		}
	case TargetUser:
		if t.UserID == "" || t.Role != "" || t.InstitutionID != "" {
			return bad("target 'user' requires a user id and nothing else")
		}
	case TargetInstitution:
		if t.InstitutionID == "" || t.Role != "" || t.UserID != "" {
			return bad("target 'institution' requires an institution id and nothing else")
		}
	default:
		return bad("unknown target type")
	}
	return nil
}

// Notice is an announcement with a lifecycle of {draft, published}.
// Invariant: PublishedAt is non-nil iff IsPublished.
type Notice struct {
	bun.BaseModel `bun:"table:notices,alias:n"`

	ID                  string     `bun:"id,pk" json:"id"`
	Title               string     `bun:"title,notnull" json:"title"`
	Content             string     `bun:"content,notnull" json:"content"`
	Priority            Priority   `bun:"priority,notnull" json:"priority"`
	TargetType          TargetType `bun:"target_type,notnull" json:"targetType"`
	TargetRole          Role       `bun:"target_role" json:"targetRole,omitempty"`
	TargetUserID        string     `bun:"target_user_id" json:"targetUserId,omitempty"`
	TargetInstitutionID string     `bun:"target_institution_id" json:"targetInstitutionId,omitempty"`
	IsPublished         bool       `bun:"is_published,notnull" json:"isPublished"`
	PublishedAt         *time.Time `bun:"published_at" json:"publishedAt"`
	CreatedAt           time.Time  `bun:"created_at,notnull" json:"createdAt"`

	TargetUser        *User        `bun:"rel:belongs-to,join:target_user_id=id" json:"targetUser,omitempty"`
	TargetInstitution *Institution `bun:"rel:belongs-to,join:target_institution_id=id" json:"targetInstitution,omitempty"`
}

// Target reassembles the variant from the stored columns.
func (n Notice) Target() NoticeTarget {
	return NoticeTarget{
		Type:          n.TargetType,
		Role:          n.TargetRole,
		UserID:        n.TargetUserID,
		InstitutionID: n.TargetInstitutionID,
	}
}

// SetTarget writes the variant back onto the stored columns.
func (n *Notice) SetTarget(t NoticeTarget) {
	n.TargetType = t.Type
	n.TargetRole = t.Role
	n.TargetUserID = t.UserID
	n.TargetInstitutionID = t.InstitutionID
}

// Validate checks notice invariants, including the publish/PublishedAt pairing
// and the target variant.
func (n Notice) Validate() error {
	if err := validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Content, validation.Required),
		validation.Field(&n.Priority, validation.Required, validation.In(PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent)),
	); err != nil {
		return err
	}
	if err := n.Target().Validate(); err != nil {
		return err
	}
	if n.IsPublished != (n.PublishedAt != nil) {
		return validation.Errors{"publishedAt": validation.NewError(
			"validation_published_at", "publishedAt must be set exactly when the notice is published")}
	}
	return nil
}
