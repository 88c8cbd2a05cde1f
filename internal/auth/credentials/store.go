package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/blazebomb/vidai/internal/db"
)

const uniqueViolation = "23505"

// Store owns the User record lifecycle: creation with a hashed
// password, lookup by email, password-carrying updates.
type Store struct {
	cache *db.Cache
}

func NewStore(cache *db.Cache) *Store {
	return &Store{cache: cache}
}

// Create persists a new user. The plaintext is hashed before the
// INSERT; the row never sees it. Duplicate emails (case-insensitive)
// fail with *ConflictError.
func (s *Store) Create(ctx context.Context, email string, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Msg: "email and password are required"}
	}

	u := &User{
		ID:    uuid.NewString(),
		Email: email,
	}
	u.SetPassword(password)

	if err := hashIfSet(u); err != nil {
		return nil, err
	}

	conn, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	err = conn.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.PasswordHash).Scan(&u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, &ConflictError{Email: email}
		}
		return nil, err
	}

	return u, nil
}

// Update persists changes to an existing user. It runs the same
// password check as Create: a staged plaintext is hashed and assigned
// before the write, an untouched password is written back as-is and
// never re-hashed.
func (s *Store) Update(ctx context.Context, u *User) error {
	if u.ID == "" || u.Email == "" {
		return &ValidationError{Msg: "user id and email are required"}
	}

	if err := hashIfSet(u); err != nil {
		return err
	}

	conn, err := s.cache.Acquire(ctx)
	if err != nil {
		return err
	}

	err = conn.QueryRowContext(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Email, u.PasswordHash).Scan(&u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return &ConflictError{Email: u.Email}
		}
		return err
	}

	return nil
}

// FindByEmail returns the matching user, or (nil, nil) when no user
// exists. Absence is a legitimate result, not an error.
func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	conn, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	u := &User{}
	err = conn.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Verify reports whether plaintext matches the user's stored hash.
func (s *Store) Verify(u *User, plaintext string) bool {
	return VerifyPassword(u.PasswordHash, plaintext)
}

// hashIfSet is the explicit form of the pre-write password hook: hash
// only when a plaintext is staged, and always assign the result back
// before persisting.
func hashIfSet(u *User) error {
	if u.Password == "" {
		return nil
	}

	hash, err := HashPassword(u.Password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.Password = ""
	return nil
}
