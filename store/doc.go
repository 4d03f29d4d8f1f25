// Package store is the entity store for the admin console, backed by a
// relational database through bun. It owns schema creation, all reads and
// writes, and the typed error taxonomy (not found, referential conflict,
// duplicate key). Reads are side-effect free; referential integrity that the
// schema does not express (plan deletion, duplicate pre-checks) is enforced
// here at the application layer.
package store
