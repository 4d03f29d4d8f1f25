package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// NewStore opens an in-memory store with the schema created, closed
// automatically when the test finishes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

// SeedUsers inserts the given users, failing the test on the first error.
func SeedUsers(t *testing.T, s *store.Store, users ...model.User) {
	t.Helper()

	ctx := context.Background()
	for i := range users {
		if err := s.CreateUser(ctx, &users[i]); err != nil {
			t.Fatalf("failed to seed user %s: %v", users[i].Email, err)
		}
	}
}

// SeedPlans inserts the given plans, failing the test on the first error.
func SeedPlans(t *testing.T, s *store.Store, plans ...model.Plan) {
	t.Helper()

	ctx := context.Background()
	for i := range plans {
		if err := s.CreatePlan(ctx, &plans[i]); err != nil {
			t.Fatalf("failed to seed plan %s: %v", plans[i].Name, err)
		}
	}
}
