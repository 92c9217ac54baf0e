package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream wraps every failure to reach or understand the metadata service.
	ErrUpstream = errors.New("metadata service request failed")
	// ErrNotFound means the service answered 404 for the requested movie.
	ErrNotFound = fmt.Errorf("%w: movie not found", ErrUpstream)
	// ErrMissingField is matched by every *MissingFieldError.
	ErrMissingField = errors.New("metadata response is missing a required field")
)

// MissingFieldError names the detail field that was absent or unusable.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
