package movie

import "errors"

var (
	// ErrNotFound is returned when no movie has the requested id.
	ErrNotFound = errors.New("movie not found")
	// ErrDuplicateTitle is returned when a movie with the same title is already stored.
	ErrDuplicateTitle = errors.New("a movie with this title already exists")
)
