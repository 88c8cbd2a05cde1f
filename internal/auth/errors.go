package auth

// Internal sub-reasons for credential failures. They reach logs only;
// the HTTP boundary answers a single generic message for all of them.
const (
	ReasonMissingFields   = "missing fields"
	ReasonUserNotFound    = "user not found"
	ReasonInvalidPassword = "invalid password"
)

// CredentialError reports a failed credential validation. Reason is
// for logging; it must never be echoed in a response body.
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return "authentication failed: " + e.Reason
}
