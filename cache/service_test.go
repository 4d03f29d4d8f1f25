package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeService records calls and replays a canned value, standing in for the
// sturdyc-backed implementation.
type fakeService struct {
	values      map[string]any
	invalidated []string
}

func newFakeService() *fakeService {
	return &fakeService{values: map[string]any{}}
}

func (f *fakeService) GetOrFetch(ctx context.Context, key string, tags []string, fetchFn func(context.Context) (any, error)) (any, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	v, err := fetchFn(ctx)
	if err != nil {
		return nil, err
	}
	f.values[key] = v
	return v, nil
}

func (f *fakeService) Invalidate(ctx context.Context, tags ...string) error {
	f.invalidated = append(f.invalidated, tags...)
	return nil
}

func TestGetOrFetchTyped(t *testing.T) {
	svc := newFakeService()
	ctx := context.Background()

	got, err := GetOrFetch(ctx, svc, "users::all", []string{"users"}, func(ctx context.Context) ([]string, error) {
		return []string{"ada", "linus"}, nil
	})
	if err != nil {
		t.Fatalf("GetOrFetch() failed: %v", err)
	}
	if len(got) != 2 || got[0] != "ada" {
		t.Errorf("GetOrFetch() = %v, want [ada linus]", got)
	}

	// Second call is served from the fake's cache and keeps its type.
	got, err = GetOrFetch(ctx, svc, "users::all", []string{"users"}, func(ctx context.Context) ([]string, error) {
		t.Error("fetch must not run on a cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("GetOrFetch() on hit failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("cached value = %v, want 2 entries", got)
	}
}

func TestGetOrFetchPropagatesErrors(t *testing.T) {
	svc := newFakeService()
	wantErr := errors.New("store offline")

	_, err := GetOrFetch(context.Background(), svc, "plans::all", []string{"plans"}, func(ctx context.Context) ([]string, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrFetch() error = %v, want %v", err, wantErr)
	}
	if _, cached := svc.values["plans::all"]; cached {
		t.Error("failed fetch must not cache a value")
	}
}

func TestGetOrFetchTypeMismatch(t *testing.T) {
	svc := newFakeService()
	svc.values["users::count"] = "not-an-int"

	_, err := GetOrFetch(context.Background(), svc, "users::count", nil, func(ctx context.Context) (int, error) {
		return 0, nil
	})
	if err == nil {
		t.Error("GetOrFetch() = nil error, want type mismatch")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.TTL < time.Minute {
		t.Errorf("default TTL %v suspiciously low", cfg.TTL)
	}
}

func TestNewCacheService(t *testing.T) {
	svc, err := NewCacheService(DefaultConfig())
	if err != nil {
		t.Fatalf("NewCacheService() failed: %v", err)
	}
	if svc == nil {
		t.Fatal("NewCacheService() returned nil service")
	}

	_, err = NewCacheService(Config{})
	if err == nil {
		t.Error("NewCacheService() with zero config should fail validation")
	}
}
