package api

import (
	"errors"
	"net/http"
)

var (
	// ErrBadRequest marks a request whose body is not valid JSON.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound marks a lookup of something that does not exist, including
	// lookups by an id that cannot name anything.
	ErrNotFound = errors.New("resource not found")
	// ErrUnprocessable marks a well-formed request missing required input.
	ErrUnprocessable = errors.New("cannot process request")
)

// StatusFor reports the HTTP status for one of the request error kinds.
func StatusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ErrUnprocessable):
		return http.StatusUnprocessableEntity, true
	default:
		return 0, false
	}
}
