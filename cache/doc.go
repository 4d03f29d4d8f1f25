// Package cache provides the tag-aware read-through cache used by the admin
// console's query layer.
//
// # Overview
//
// Every cached read is registered with a deterministic key plus the set of
// tags it depends on. Mutations invalidate tags, which drops every key that
// was registered under them; the next read with a dropped key recomputes from
// the source of truth.
//
//	svc, _ := cache.NewCacheService(cache.DefaultConfig())
//	users, err := cache.GetOrFetch(ctx, svc, "users::all", []string{cachetag.Users},
//		func(ctx context.Context) ([]model.User, error) {
//			return store.ListUsers(ctx)
//		})
//	...
//	svc.Invalidate(ctx, cachetag.AffectedBy(cachetag.UserWrite, id)...)
//
// # Semantics
//
//   - A value stays cached until one of its tags is invalidated or it ages
//     out of the underlying store; invalidation is exact, TTL is a backstop.
//   - Empty results are cached like any other result; there is no negative
//     caching special case.
//   - Concurrent reads of an invalidated key may race to recompute. Duplicate
//     recomputation is tolerated (the source read is idempotent); the backend
//     additionally deduplicates in-flight fetches per key.
//   - The cache is process-local with process lifetime. In a multi-process
//     deployment invalidations do not propagate across processes; that
//     requires an external invalidation bus and is out of scope here.
//
// The default implementation is backed by sturdyc; see internal/cacheinfra.
package cache
