package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// InstitutionStatus is the lifecycle state of an institution.
type InstitutionStatus string

const (
	InstitutionActive   InstitutionStatus = "active"
	InstitutionInactive InstitutionStatus = "inactive"
)

// Institution is persisted only for its status. The set of institutions is
// derived from the distinct User.Institution values; the reconciler creates a
// row for every name that appears on a user (see console.Institutions).
type Institution struct {
	bun.BaseModel `bun:"table:institutions,alias:i"`

	ID     string            `bun:"id,pk" json:"id"`
	Name   string            `bun:"name,notnull,unique" json:"name"`
	Status InstitutionStatus `bun:"status,notnull" json:"status"`
}

// Validate checks institution invariants.
func (i Institution) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.Status, validation.Required, validation.In(InstitutionActive, InstitutionInactive)),
	)
}
