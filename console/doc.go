// Package console implements the admin console services, one per entity.
// Reads go through the injected cache service and register the tags they
// depend on; mutations write to the store first and invalidate the affected
// tag set only after the write succeeds, so a failed write never drops valid
// cache entries and a successful one is visible to the very next read.
//
// Services return filtered views through listview; stats always describe the
// full collection no matter which filters are active.
package console
