package auth

import (
	"context"
	"errors"

	"github.com/blazebomb/vidai/internal/auth/credentials"
	"github.com/blazebomb/vidai/internal/session"
)

// Resolver determines which internal user a federated identity belongs
// to, creating the user on first login. It is the ONLY place where
// identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *Identity) (Principal, error)
}

// Authority is the central authentication decision point. It validates
// credential logins against the store, accepts provider-verified
// federated identities, and owns session issuance and projection.
type Authority struct {
	store    *credentials.Store
	resolver Resolver
	issuer   *session.Issuer
}

func NewAuthority(
	store *credentials.Store,
	resolver Resolver,
	issuer *session.Issuer,
) *Authority {
	return &Authority{
		store:    store,
		resolver: resolver,
		issuer:   issuer,
	}
}

// LoginWithCredentials validates an email/password pair and returns the
// authenticated principal. Every validation failure is a
// *CredentialError whose sub-reason is for logs only.
func (a *Authority) LoginWithCredentials(
	ctx context.Context,
	email string,
	password string,
) (Principal, error) {

	if email == "" || password == "" {
		return Principal{}, &CredentialError{Reason: ReasonMissingFields}
	}

	u, err := a.store.FindByEmail(ctx, email)
	if err != nil {
		return Principal{}, err
	}
	if u == nil {
		return Principal{}, &CredentialError{Reason: ReasonUserNotFound}
	}

	if !a.store.Verify(u, password) {
		return Principal{}, &CredentialError{Reason: ReasonInvalidPassword}
	}

	return Principal{UserID: u.ID, Email: u.Email}, nil
}

// LoginFederated accepts an identity the provider integration has
// already verified. No password check happens on this path; the
// resolver maps or creates the backing user record.
func (a *Authority) LoginFederated(
	ctx context.Context,
	identity *Identity,
) (Principal, error) {

	if identity == nil {
		return Principal{}, errors.New("auth: identity is nil")
	}

	return a.resolver.Resolve(ctx, identity)
}

// IssueSession signs a session token for an authenticated principal.
// This is the token-issuance hook: it fires once per login and is the
// only writer of the token's subject claim.
func (a *Authority) IssueSession(p Principal) (string, error) {
	return a.issuer.Issue(p.UserID, p.Email)
}

// Session is the session-view hook: it reconstructs the outward
// session object from a presented token on every authenticated
// request, copying the subject claim out unchanged.
func (a *Authority) Session(token string) (*session.View, error) {
	return a.issuer.Project(token)
}
