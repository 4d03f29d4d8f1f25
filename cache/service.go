package cache

import (
	"context"
	"fmt"
)

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from
// the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the tag-aware read-through operations the console's
// query layer needs. It is exported so alternate backends can be provided.
type CacheService interface {
	// GetOrFetch returns the cached value for key if no tag it was registered
	// under has been invalidated since it was cached; otherwise it recomputes
	// via fetchFn and caches the result under key with the given tags.
	GetOrFetch(ctx context.Context, key string, tags []string, fetchFn func(context.Context) (any, error)) (any, error)

	// Invalidate discards every cached entry registered under any of the tags.
	Invalidate(ctx context.Context, tags ...string) error
}

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, tags []string, fetchFn FetchFn[T]) (T, error) {
	result, err := service.GetOrFetch(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: key %q holds %T, caller expected %T", key, result, zero)
	}
	return typed, nil
}
