package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazebomb/vidai/internal/auth"
	"github.com/blazebomb/vidai/internal/auth/credentials"
	"github.com/blazebomb/vidai/internal/db"
)

func newTestResolver(t *testing.T) (*StoreResolver, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	cache := db.NewCache(func(ctx context.Context) (*db.DB, error) {
		return &db.DB{DB: mockDB}, nil
	})

	return NewStoreResolver(credentials.NewStore(cache)), mock
}

func githubIdentity() *auth.Identity {
	return &auth.Identity{
		Provider:       "github",
		ProviderUserID: "42",
		Email:          "fed@x.com",
		EmailVerified:  true,
	}
}

func TestResolve_ExistingUser(t *testing.T) {
	r, mock := newTestResolver(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("fed@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		).AddRow("user-7", "fed@x.com", "$2a$10$hash", now, now))

	principal, err := r.Resolve(context.Background(), githubIdentity())
	require.NoError(t, err)

	assert.Equal(t, "user-7", principal.UserID)
	assert.Equal(t, "fed@x.com", principal.Email)
}

func TestResolve_FirstLoginCreatesUser(t *testing.T) {
	r, mock := newTestResolver(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("fed@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "fed@x.com", sqlmock.AnyArg()).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now),
		)

	principal, err := r.Resolve(context.Background(), githubIdentity())
	require.NoError(t, err)

	assert.NotEmpty(t, principal.UserID)
	assert.Equal(t, "fed@x.com", principal.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_CreateRaceFallsBackToLookup(t *testing.T) {
	r, mock := newTestResolver(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("fed@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("fed@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		).AddRow("user-8", "fed@x.com", "$2a$10$hash", now, now))

	principal, err := r.Resolve(context.Background(), githubIdentity())
	require.NoError(t, err)

	assert.Equal(t, "user-8", principal.UserID)
}

func TestResolve_NilOrEmailless(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(context.Background(), nil)
	require.Error(t, err)

	_, err = r.Resolve(context.Background(), &auth.Identity{Provider: "github"})
	require.Error(t, err)
}
