package domain

// SessionMode is derived from the presence of an auth token.
type SessionMode string

const (
	ModeGuest         SessionMode = "guest"
	ModeAuthenticated SessionMode = "authenticated"
)

// ModeForToken returns the mode implied by token.
func ModeForToken(token string, ok bool) SessionMode {
	if ok && token != "" {
		return ModeAuthenticated
	}
	return ModeGuest
}
