package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "github", "google"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // verified email returned by provider
	EmailVerified  bool   // whether provider asserts email ownership
}

// Principal is the minimal authenticated identity embedded in a
// session: the resolved internal user, nothing provider-specific.
type Principal struct {
	UserID string
	Email  string
}
