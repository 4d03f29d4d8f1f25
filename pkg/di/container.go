package di

import (
	"context"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/console"
	"github.com/goliatone/go-school-admin/internal/cacheinfra"
	"github.com/goliatone/go-school-admin/store"
)

// Config holds everything the container needs to stand up the console.
type Config struct {
	// DSN is the sqlite data source name. Defaults to an in-memory database.
	DSN string

	// Cache configures the tag-aware cache service.
	Cache cacheinfra.Config
}

// DefaultConfig returns a Config suitable for local use: an in-memory
// database and the default cache settings.
func DefaultConfig() Config {
	return Config{
		DSN:   ":memory:",
		Cache: cacheinfra.DefaultConfig(),
	}
}

// Container provides dependency injection for the console. It manages
// singleton instances of the store, the cache service and the per-entity
// services, wired so every service shares the same cache and therefore the
// same tag index.
type Container struct {
	store         *store.Store
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        Config

	users         *console.Users
	institutions  *console.Institutions
	plans         *console.Plans
	subscriptions *console.Subscriptions
	notices       *console.Notices
	attendance    *console.Attendance
}

// NewContainer creates a new DI container with the provided configuration.
// It opens the store, creates the schema, initializes the cache service using
// the sturdyc adapter and wires every console service.
func NewContainer(ctx context.Context, config Config) (*Container, error) {
	if config.DSN == "" {
		config.DSN = ":memory:"
	}

	st, err := store.Open(config.DSN)
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		st.Close()
		return nil, err
	}

	cacheService, err := cacheinfra.NewSturdycService(config.Cache)
	if err != nil {
		st.Close()
		return nil, err
	}

	institutions := console.NewInstitutions(st, cacheService)

	return &Container{
		store:         st,
		cacheService:  cacheService,
		keySerializer: cache.NewDefaultKeySerializer(),
		config:        config,
		users:         console.NewUsers(st, cacheService, institutions),
		institutions:  institutions,
		plans:         console.NewPlans(st, cacheService),
		subscriptions: console.NewSubscriptions(st, cacheService),
		notices:       console.NewNotices(st, cacheService),
		attendance:    console.NewAttendance(st, cacheService),
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default
// configuration. This is a convenience constructor for typical use cases
// where custom configuration is not required.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, DefaultConfig())
}

// Close releases the store's connection pool.
func (c *Container) Close() error {
	return c.store.Close()
}

// Store returns the singleton entity store.
func (c *Container) Store() *store.Store {
	return c.store
}

// CacheService returns the singleton cache service instance.
// This allows access to the underlying cache for advanced use cases.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}

// Users returns the user service.
func (c *Container) Users() *console.Users {
	return c.users
}

// Institutions returns the institution service.
func (c *Container) Institutions() *console.Institutions {
	return c.institutions
}

// Plans returns the plan service.
func (c *Container) Plans() *console.Plans {
	return c.plans
}

// Subscriptions returns the subscription service.
func (c *Container) Subscriptions() *console.Subscriptions {
	return c.subscriptions
}

// Notices returns the notice service.
func (c *Container) Notices() *console.Notices {
	return c.notices
}

// Attendance returns the attendance service.
func (c *Container) Attendance() *console.Attendance {
	return c.attendance
}
