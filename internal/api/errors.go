package api

import (
	"errors"
	"fmt"
)

// Error codes produced by the client itself. All other codes originate from
// the backend and are passed through verbatim.
const (
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeUnknownError    = "UNKNOWN_ERROR"
)

// Error is an application-level API failure: the backend (or, for
// CodeInvalidResponse, the client's decoder) rejected the request. Transport
// failures are never converted to *Error; they surface as plain wrapped
// errors so callers can tell the two failure classes apart with errors.As.
type Error struct {
	Code    string
	Message string
	Status  int
}

// Error implements the error interface. The message is the backend's text,
// shown to the user verbatim.
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) String() string {
	return fmt.Sprintf("api error %s (%d): %s", e.Code, e.Status, e.Message)
}

// IsUnauthorized reports whether the error came back with HTTP 401.
func (e *Error) IsUnauthorized() bool {
	return e.Status == 401
}

// AsError extracts an *Error from err's chain. The second return is false
// for transport-level failures.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
