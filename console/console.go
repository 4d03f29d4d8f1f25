package console

import (
	"context"
	"strings"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
)

const (
	// searchMinLength is the minimum query length before a search hits the
	// store; shorter queries return no rows.
	searchMinLength = 2

	// searchLimit caps search results for the targeting pickers.
	searchLimit = 10
)

// invalidateAfter drops the tag set affected by a mutation. It must only be
// called after the corresponding store write succeeded.
func invalidateAfter(ctx context.Context, c cache.CacheService, kind cachetag.Mutation, id string) error {
	return c.Invalidate(ctx, cachetag.AffectedBy(kind, id)...)
}

// normalizeQuery trims a search query and reports whether it is long enough
// to run.
func normalizeQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, len(q) >= searchMinLength
}
