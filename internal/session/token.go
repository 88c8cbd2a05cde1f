package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed session horizon. No sliding expiry.
const DefaultTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("session: invalid token")

// Claims is the signed session payload. Subject carries the user id;
// it is written exactly once, in Issue, and never touched afterwards.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// View is the outward-facing session object handed to request
// handlers. It is derived from a token and owns no state of its own:
// mutating a View never reaches the token it came from.
type View struct {
	User      SessionUser
	ExpiresAt time.Time
}

type SessionUser struct {
	ID    string
	Email string
}

// Issuer signs and reads session tokens. Issue and Project are the
// only two paths that touch the subject claim: Issue writes it,
// Project copies it out.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue creates a signed token for an authenticated identity. This is
// the sole writer of the subject claim.
func (i *Issuer) Issue(userID string, email string) (string, error) {
	if userID == "" {
		return "", errors.New("session: missing user id")
	}

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: email,
	})

	return token.SignedString(i.secret)
}

// Project reads a token back into a session View. It copies the
// subject claim into View.User.ID unchanged and performs no writes.
func (i *Issuer) Project(tokenString string) (*View, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	view := &View{
		User: SessionUser{
			ID:    claims.Subject,
			Email: claims.Email,
		},
	}
	if claims.ExpiresAt != nil {
		view.ExpiresAt = claims.ExpiresAt.Time
	}

	return view, nil
}
