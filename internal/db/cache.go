package db

import (
	"context"
	"database/sql"
	"sync"

	"golang.org/x/sync/singleflight"
)

const maxPoolSize = 10

// Opener establishes one database connection. It must return a handle
// that is ready for commands (pinged, migrated).
type Opener func(ctx context.Context) (*DB, error)

// Cache memoizes a single database connection for the whole process.
// The first Acquire establishes it; concurrent first users converge on
// the same attempt; every later Acquire returns the cached handle.
type Cache struct {
	open Opener

	mu    sync.Mutex
	conn  *DB
	group singleflight.Group
}

func NewCache(open Opener) *Cache {
	return &Cache{open: open}
}

// NewPostgresCache builds a Cache that opens the given DSN with a
// bounded pool and runs the schema migration before handing the
// connection out.
func NewPostgresCache(dsn string) *Cache {
	return NewCache(func(ctx context.Context) (*DB, error) {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}

		sqlDB.SetMaxOpenConns(maxPoolSize)

		if err := sqlDB.PingContext(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}

		if err := RunMigration(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}

		return &DB{DB: sqlDB}, nil
	})
}

// Acquire returns the established handle, waiting on an in-flight
// attempt if one exists and starting exactly one otherwise. A failed
// attempt is not cached; the next caller retries from scratch.
func (c *Cache) Acquire(ctx context.Context) (*DB, error) {
	c.mu.Lock()
	if c.conn != nil {
		conn := c.conn
		c.mu.Unlock()
		return conn, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("connect", func() (any, error) {
		// Re-check under the flight: a caller that raced past the
		// fast path may land here after the connection was cached.
		c.mu.Lock()
		if c.conn != nil {
			conn := c.conn
			c.mu.Unlock()
			return conn, nil
		}
		c.mu.Unlock()

		conn, err := c.open(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		return conn, nil
	})

	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	return v.(*DB), nil
}

// Close releases the cached connection if one was ever established.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}
