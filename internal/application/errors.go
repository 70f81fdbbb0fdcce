package application

import "errors"

// Business errors. Their messages are returned verbatim to clients.
var (
	ErrDuplicateUsername = errors.New("Username already exists")
	ErrUserNotFound      = errors.New("User not found.")
	ErrMissingUserID     = errors.New("UserId is not provided.")
)

// IsBusinessError reports whether err is answered with a 200 {error} body
// rather than through the plain-text error path.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrDuplicateUsername) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMissingUserID)
}
