// Package model defines the entities managed by the admin console: users,
// institutions, subscription plans, subscriptions, notices and attendance
// records. Entities are plain structs with bun mappings; validation rules live
// next to the types they constrain.
package model
