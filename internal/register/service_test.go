package register

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazebomb/vidai/internal/auth/credentials"
	"github.com/blazebomb/vidai/internal/db"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	cache := db.NewCache(func(ctx context.Context) (*db.DB, error) {
		return &db.DB{DB: mockDB}, nil
	})

	return NewService(credentials.NewStore(cache)), mock
}

func TestRegister_Success(t *testing.T) {
	service, mock := newTestService(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		))

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "a@x.com", sqlmock.AnyArg()).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now),
		)

	u, err := service.Register(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, credentials.VerifyPassword(u.PasswordHash, "secret1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_EmptyFields(t *testing.T) {
	service, _ := newTestService(t)

	for _, tc := range []struct{ email, password string }{
		{"", "secret1"},
		{"a@x.com", ""},
	} {
		_, err := service.Register(context.Background(), tc.email, tc.password)

		var validationErr *credentials.ValidationError
		require.ErrorAs(t, err, &validationErr)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, mock := newTestService(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "password_hash", "created_at", "updated_at"},
		).AddRow("user-1", "a@x.com", "$2a$10$hash", now, now))

	_, err := service.Register(context.Background(), "a@x.com", "secret1")

	var conflictErr *credentials.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// No INSERT was attempted: the duplicate never reaches the table.
	require.NoError(t, mock.ExpectationsWereMet())
}
