package scope

import "errors"

var (
	// ErrInvalidToken is returned when a JWT token is invalid, expired, or malformed.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSubject is returned when the token subject is not a user id.
	ErrInvalidSubject = errors.New("invalid token subject")
)
