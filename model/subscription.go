package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// PaymentStatus is the payment state of a subscription. Any state may
// transition to any other via explicit admin action.
type PaymentStatus string

const (
	PaymentDue     PaymentStatus = "due"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentDue, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// Subscription links an institution to a plan for a billing period.
// Invariant: PaidAt is non-nil iff PaymentStatus == PaymentPaid.
type Subscription struct {
	bun.BaseModel `bun:"table:subscriptions,alias:s"`

	ID            string        `bun:"id,pk" json:"id"`
	InstitutionID string        `bun:"institution_id,notnull" json:"institutionId"`
	PlanID        string        `bun:"plan_id,notnull" json:"planId"`
	Amount        float64       `bun:"amount,notnull" json:"amount"`
	BillingCycle  BillingCycle  `bun:"billing_cycle,notnull" json:"billingCycle"`
	StartDate     time.Time     `bun:"start_date,notnull" json:"startDate"`
	EndDate       time.Time     `bun:"end_date,notnull" json:"endDate"`
	PaymentStatus PaymentStatus `bun:"payment_status,notnull" json:"paymentStatus"`
	PaidAt        *time.Time    `bun:"paid_at" json:"paidAt"`
	TransactionID string        `bun:"transaction_id" json:"transactionId"`
	Notes         string        `bun:"notes" json:"notes"`
	CreatedAt     time.Time     `bun:"created_at,notnull" json:"createdAt"`

	Institution *Institution `bun:"rel:belongs-to,join:institution_id=id" json:"institution,omitempty"`
	Plan        *Plan        `bun:"rel:belongs-to,join:plan_id=id" json:"plan,omitempty"`
}

// Expired reports whether the subscription period has ended as of now.
// Expiry is a render-time computation only; it never changes PaymentStatus.
func (s Subscription) Expired(now time.Time) bool {
	return s.EndDate.Before(now)
}

// Validate checks subscription invariants, including the PaidAt/status pairing.
func (s Subscription) Validate() error {
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.InstitutionID, validation.Required),
		validation.Field(&s.PlanID, validation.Required),
		validation.Field(&s.Amount, validation.Min(0.0)),
		validation.Field(&s.BillingCycle, validation.Required, validation.In(BillingMonthly, BillingYearly)),
		validation.Field(&s.PaymentStatus, validation.Required, validation.In(PaymentDue, PaymentPaid, PaymentOverdue)),
		validation.Field(&s.StartDate, validation.Required),
		validation.Field(&s.EndDate, validation.Required),
	); err != nil {
		return err
	}
	if (s.PaymentStatus == PaymentPaid) != (s.PaidAt != nil) {
		return validation.Errors{"paidAt": validation.NewError(
			"validation_paid_at", "paidAt must be set exactly when paymentStatus is paid")}
	}
	return nil
}
