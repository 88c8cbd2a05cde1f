package middleware

import (
	"context"
	"net/http"

	"github.com/blazebomb/vidai/internal/auth"
	"github.com/blazebomb/vidai/internal/session"
)

// unexported, collision-proof context key
type sessionContextKeyType struct{}

var sessionKey = sessionContextKeyType{}

// SessionFromContext extracts the authenticated session view from context.
func SessionFromContext(ctx context.Context) (*session.View, bool) {
	view, ok := ctx.Value(sessionKey).(*session.View)
	return view, ok
}

type AuthMiddleware struct {
	Authority *auth.Authority
}

func NewAuthMiddleware(authority *auth.Authority) *AuthMiddleware {
	return &AuthMiddleware{Authority: authority}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(w)
			return
		}

		// 2. Project the token into a session view. Signature and
		// expiry are validated here; nothing is looked up server-side.
		view, err := a.Authority.Session(cookie.Value)
		if err != nil || view == nil {
			unauthorized(w)
			return
		}

		// 3. Attach session view to context
		ctx := context.WithValue(r.Context(), sessionKey, view)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
