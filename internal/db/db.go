package db

import (
	"database/sql"
	"fmt"
)

// DB wraps the sql handle so callers depend on this package,
// not on database/sql directly.
type DB struct {
	*sql.DB
}

// ConnectionError reports a failed connection-establishment attempt.
// The underlying cause is preserved for logs only; HTTP boundaries
// answer a generic server error.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("db: connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
