package store

import (
	"fmt"
	"net/http"
)

// Error is a store-level failure with the HTTP status it should surface
// as. The sqlite layer returns these; the API error handler unwraps them.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPCode() int { return e.Code }

// ErrNotFound is returned by Get/Update/Delete when no row matches.
var ErrNotFound = &Error{Code: http.StatusNotFound, Message: "resource not found"}
