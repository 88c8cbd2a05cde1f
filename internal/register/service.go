package register

import (
	"context"

	"github.com/blazebomb/vidai/internal/auth/credentials"
)

// Service is the public-facing registration workflow: validation,
// uniqueness, then delegation to the credential store. Registration
// does not log the user in.
type Service struct {
	store *credentials.Store
}

func NewService(store *credentials.Store) *Service {
	return &Service{store: store}
}

// Register creates a new user from an email/password pair. The
// pre-check keeps the common duplicate case cheap; the store's unique
// index still backstops concurrent registrations.
func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
) (*credentials.User, error) {

	if email == "" || password == "" {
		return nil, &credentials.ValidationError{Msg: "all fields are required"}
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &credentials.ConflictError{Email: email}
	}

	return s.store.Create(ctx, email, password)
}
