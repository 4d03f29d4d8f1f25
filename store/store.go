package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-school-admin/model"
)

// Store exposes every read and write the console performs. It is safe for
// concurrent use; all concurrency control is delegated to database/sql.
type Store struct {
	db *bun.DB
}

// New wraps an existing bun.DB. The caller keeps ownership of the connection.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open connects to a sqlite database at the given DSN and returns a Store
// over it. In-memory databases are pinned to a single connection so every
// query sees the same data.
func Open(dsn string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		sqldb.SetMaxOpenConns(1)
		sqldb.SetConnMaxLifetime(0)
	}
	return &Store{db: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

// DB returns the underlying bun.DB, mainly for test seeding.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the schema for every entity if it does not already exist.
func (s *Store) Init(ctx context.Context) error {
	models := []any{
		(*model.User)(nil),
		(*model.Institution)(nil),
		(*model.Plan)(nil),
		(*model.Subscription)(nil),
		(*model.Notice)(nil),
		(*model.Attendance)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// likePattern builds a contains pattern for the lower(col) LIKE comparisons
// the search queries use. The term is lowercased and LIKE metacharacters are
// escaped so user input matches literally; the query must carry a matching
// ESCAPE '\' clause.
func likePattern(q string) string {
	q = strings.ToLower(q)
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
