package console

import (
	"context"
	"testing"

	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

func TestCreateUserValidation(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"short password", CreateUserInput{Name: "Ada", Email: "ada@example.com", Role: model.RoleAdmin, Password: "12345"}},
		{"missing name", CreateUserInput{Email: "ada@example.com", Role: model.RoleAdmin, Password: "123456"}},
		{"bad email", CreateUserInput{Name: "Ada", Email: "not-an-email", Role: model.RoleAdmin, Password: "123456"}},
		{"bad role", CreateUserInput{Name: "Ada", Email: "ada@example.com", Role: "JANITOR", Password: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.users.Create(ctx, tt.input); !store.IsValidation(err) {
				t.Errorf("Create() = %v, want validation error", err)
			}
		})
	}

	users, err := c.users.All(ctx)
	if err != nil {
		t.Fatalf("users.All() failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("rejected creates left %d users behind", len(users))
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	c := newTestConsole(t)

	user := c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "")

	if user.PasswordHash == "" || user.PasswordHash == "correct-horse" {
		t.Fatalf("password stored as %q, want a bcrypt hash", user.PasswordHash)
	}
	if !c.users.VerifyPassword(user, "correct-horse") {
		t.Error("VerifyPassword() rejected the right password")
	}
	if c.users.VerifyPassword(user, "wrong-horse") {
		t.Error("VerifyPassword() accepted the wrong password")
	}
}

func TestUserWriteReconcilesInstitutions(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "Greenwood")

	record, err := c.store.GetInstitutionByName(ctx, "Greenwood")
	if err != nil {
		t.Fatalf("user create did not reconcile the institution: %v", err)
	}
	if record.Status != model.InstitutionActive {
		t.Errorf("reconciled institution status = %q, want active", record.Status)
	}

	// Deactivate, then add another Greenwood user; reconciliation must not
	// flip the status back.
	if err := c.institutions.SetStatus(ctx, "Greenwood", model.InstitutionInactive); err != nil {
		t.Fatalf("SetStatus() failed: %v", err)
	}
	c.createUser(t, "Grace Hopper", "grace@example.com", model.RoleStudent, "Greenwood")

	record, err = c.store.GetInstitutionByName(ctx, "Greenwood")
	if err != nil {
		t.Fatalf("GetInstitutionByName() failed: %v", err)
	}
	if record.Status != model.InstitutionInactive {
		t.Errorf("reconciliation reset the status to %q", record.Status)
	}
}

func TestCommittedWriteInvalidatesDespiteReconcileError(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	// An institutions service over a closed store makes reconciliation fail
	// while the user insert itself still commits.
	broken, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	if err := broken.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	users := NewUsers(c.store, c.cache, NewInstitutions(broken, c.cache))

	if _, err := users.All(ctx); err != nil {
		t.Fatalf("users.All() failed: %v", err)
	}
	c.cache.reset()

	_, err = users.Create(ctx, CreateUserInput{
		Name: "Ada Lovelace", Email: "ada@example.com",
		Role: model.RoleAdmin, Institution: "Greenwood", Password: "correct-horse",
	})
	if err == nil {
		t.Fatal("Create() with failing reconciliation returned nil error")
	}
	if len(c.cache.invalidated) == 0 {
		t.Fatal("committed insert left the user tag set standing")
	}

	after, err := users.All(ctx)
	if err != nil {
		t.Fatalf("users.All() after write failed: %v", err)
	}
	if len(after) != 1 || after[0].Email != "ada@example.com" {
		t.Errorf("read after committed write = %+v, want the new user", after)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "Greenwood")

	for i := 0; i < 3; i++ {
		if err := c.institutions.Reconcile(ctx); err != nil {
			t.Fatalf("Reconcile() run %d failed: %v", i+1, err)
		}
	}

	records, err := c.store.ListInstitutions(ctx)
	if err != nil {
		t.Fatalf("ListInstitutions() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("repeated reconciliation produced %d records, want 1", len(records))
	}
}

func TestGreenwoodScenario(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	c.createUser(t, "Ada Lovelace", "ada@greenwood.edu", model.RoleAdmin, "Greenwood")
	c.createUser(t, "Grace Hopper", "grace@greenwood.edu", model.RoleStudent, "Greenwood")
	c.createUser(t, "Alan Kay", "alan@greenwood.edu", model.RoleStudent, "Greenwood")
	c.createUser(t, "Barbara Liskov", "barbara@acme.edu", model.RoleTeacher, "Acme")

	view, err := c.users.View(ctx, listview.UserFilter{Institution: "Greenwood"})
	if err != nil {
		t.Fatalf("users.View() failed: %v", err)
	}
	if view.Shown != 3 || view.Total != 4 {
		t.Errorf("view shows %d of %d, want 3 of 4", view.Shown, view.Total)
	}
	for _, u := range view.Users {
		if u.Institution != "Greenwood" {
			t.Errorf("filtered view leaked user %q from %q", u.Email, u.Institution)
		}
	}
	// Stats stay anchored to the full collection while the table narrows.
	if view.Stats.Total != 4 {
		t.Errorf("view stats total = %d, want unfiltered 4", view.Stats.Total)
	}

	cards, err := c.institutions.WithUsers(ctx)
	if err != nil {
		t.Fatalf("institutions.WithUsers() failed: %v", err)
	}
	var greenwood *listview.InstitutionData
	for i := range cards {
		if cards[i].Name == "Greenwood" {
			greenwood = &cards[i]
		}
	}
	if greenwood == nil {
		t.Fatal("no Greenwood card")
	}
	if greenwood.TotalUsers != 3 || greenwood.Admins != 1 || greenwood.Students != 2 || greenwood.Others != 0 {
		t.Errorf("Greenwood card = %+v, want totalUsers 3, admins 1, students 2, others 0", greenwood)
	}
}

func TestUniqueInstitutionsAndSearch(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "Greenwood")
	c.createUser(t, "Barbara Liskov", "barbara@example.com", model.RoleTeacher, "Acme")
	c.createUser(t, "Dennis Ritchie", "dennis@example.com", model.RoleUser, "")

	names, err := c.users.UniqueInstitutions(ctx)
	if err != nil {
		t.Fatalf("UniqueInstitutions() failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("UniqueInstitutions() = %v, want 2 names", names)
	}

	t.Run("short query returns nothing", func(t *testing.T) {
		got, err := c.users.Search(ctx, " a ")
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("one-character search returned %d rows", len(got))
		}
	})

	t.Run("search matches by name", func(t *testing.T) {
		got, err := c.users.Search(ctx, "ada")
		if err != nil {
			t.Fatalf("Search() failed: %v", err)
		}
		if len(got) != 1 || got[0].Email != "ada@example.com" {
			t.Errorf("Search(ada) = %+v", got)
		}
	})
}
