package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// BillingCycle is how often a subscription bills.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// FeatureList is an ordered list of feature descriptions, stored as JSON text.
type FeatureList []string

// Value implements driver.Valuer.
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(f))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (f *FeatureList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(f))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(f))
	default:
		return fmt.Errorf("model: cannot scan %T into FeatureList", src)
	}
}

// Plan is a subscription plan. A plan cannot be deleted while any subscription
// references it; the store enforces that at the application layer.
type Plan struct {
	bun.BaseModel `bun:"table:plans,alias:p"`

	ID           string       `bun:"id,pk" json:"id"`
	Name         string       `bun:"name,notnull,unique" json:"name"`
	Price        float64      `bun:"price,notnull" json:"price"`
	BillingCycle BillingCycle `bun:"billing_cycle,notnull" json:"billingCycle"`
	Features     FeatureList  `bun:"features,type:text" json:"features"`
	IsActive     bool         `bun:"is_active,notnull" json:"isActive"`
}

// Validate checks plan invariants.
func (p Plan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Price, validation.Min(0.0)),
		validation.Field(&p.BillingCycle, validation.Required, validation.In(BillingMonthly, BillingYearly)),
	)
}
