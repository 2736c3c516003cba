package auth

import "errors"

// Validation failures. Locally generated, always a 400 at the boundary,
// never forwarded to the engine.
var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrUsernameLength   = errors.New("Username must be 2-20 characters")
)

// ErrSessionNotFound means the session-keyed view is absent or expired.
// Maps to 401 at the boundary.
var ErrSessionNotFound = errors.New("invalid or expired session")

// IsValidation reports whether err is a client-input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUsernameRequired) || errors.Is(err, ErrUsernameLength)
}
