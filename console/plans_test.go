package console

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

func TestPlanLifecycle(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	basic := &model.Plan{Name: "Basic", Price: 29, BillingCycle: model.BillingMonthly, IsActive: true,
		Features: model.FeatureList{"Up to 100 students", "Email support"}}
	if err := c.plans.Create(ctx, basic); err != nil {
		t.Fatalf("plans.Create() failed: %v", err)
	}

	pro := &model.Plan{Name: "Pro", Price: 99, BillingCycle: model.BillingYearly, IsActive: false}
	if err := c.plans.Create(ctx, pro); err != nil {
		t.Fatalf("plans.Create() failed: %v", err)
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		dup := &model.Plan{Name: "Basic", Price: 1, BillingCycle: model.BillingMonthly}
		if err := c.plans.Create(ctx, dup); !store.IsValidation(err) {
			t.Errorf("Create(duplicate) = %v, want validation error", err)
		}
	})

	t.Run("active excludes disabled plans", func(t *testing.T) {
		active, err := c.plans.Active(ctx)
		if err != nil {
			t.Fatalf("plans.Active() failed: %v", err)
		}
		if len(active) != 1 || active[0].Name != "Basic" {
			t.Errorf("Active() = %+v, want just Basic", active)
		}
	})

	t.Run("toggle active refreshes reads", func(t *testing.T) {
		got, err := c.plans.ToggleActive(ctx, pro.ID)
		if err != nil {
			t.Fatalf("ToggleActive() failed: %v", err)
		}
		if !got.IsActive {
			t.Error("ToggleActive() did not enable the plan")
		}
		active, err := c.plans.Active(ctx)
		if err != nil {
			t.Fatalf("plans.Active() failed: %v", err)
		}
		if len(active) != 2 {
			t.Errorf("Active() after toggle = %d plans, want 2", len(active))
		}
	})

	t.Run("toggle missing plan", func(t *testing.T) {
		if _, err := c.plans.ToggleActive(ctx, "no-such-plan"); !store.IsNotFound(err) {
			t.Errorf("ToggleActive(missing) = %v, want not found", err)
		}
	})
}

func TestPlanDeleteGuard(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	plan := &model.Plan{Name: "Basic", Price: 29, BillingCycle: model.BillingMonthly, IsActive: true}
	if err := c.plans.Create(ctx, plan); err != nil {
		t.Fatalf("plans.Create() failed: %v", err)
	}

	c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "Greenwood")
	inst, err := c.store.GetInstitutionByName(ctx, "Greenwood")
	if err != nil {
		t.Fatalf("GetInstitutionByName() failed: %v", err)
	}

	sub := &model.Subscription{
		InstitutionID: inst.ID,
		PlanID:        plan.ID,
		Amount:        29,
		BillingCycle:  model.BillingMonthly,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		PaymentStatus: model.PaymentDue,
	}
	if err := c.subscriptions.Create(ctx, sub); err != nil {
		t.Fatalf("subscriptions.Create() failed: %v", err)
	}

	c.cache.reset()
	if err := c.plans.Delete(ctx, plan.ID); !store.IsReferentialConflict(err) {
		t.Fatalf("Delete(referenced) = %v, want referential conflict", err)
	}
	if len(c.cache.invalidated) != 0 {
		t.Errorf("conflicting delete invalidated tags %v, want none", c.cache.invalidated)
	}

	// The plan and its subscription survive the refused delete.
	plans, err := c.plans.All(ctx)
	if err != nil {
		t.Fatalf("plans.All() failed: %v", err)
	}
	if len(plans) != 1 {
		t.Errorf("plans.All() = %d plans after refused delete, want 1", len(plans))
	}

	if err := c.subscriptions.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("subscriptions.Delete() failed: %v", err)
	}
	if err := c.plans.Delete(ctx, plan.ID); err != nil {
		t.Errorf("Delete() after clearing references = %v, want nil", err)
	}
}
