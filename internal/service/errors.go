package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers every failed entity lookup (slug, username, post id).
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when a mutation is attempted by a user other
	// than the record's author.
	ErrNotOwner = errors.New("not the author")
	ErrFollowSelf = errors.New("cannot follow self")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError identifies which submitted field is invalid and why.
// Handlers turn it into a form redisplay rather than a failure status.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
