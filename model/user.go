package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// Role determines a user's capability tier.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleTeacher    Role = "TEACHER"
	RoleStudent    Role = "STUDENT"
	RoleUser       Role = "USER"
)

// Roles lists every valid role, in capability order.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent, RoleUser}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent, RoleUser:
		return true
	}
	return false
}

// User is an account in the system. Institution is a name reference; an empty
// string means the user belongs to no institution.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	Phone        string    `bun:"phone" json:"phone"`
	Institution  string    `bun:"institution" json:"institution"`
	Role         Role      `bun:"role,notnull" json:"role"`
	Picture      string    `bun:"picture" json:"picture"`
	PasswordHash string    `bun:"password_hash" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// Validate checks the invariants a user row must satisfy before it is written.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Role, validation.Required, validation.In(RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent, RoleUser)),
	)
}
