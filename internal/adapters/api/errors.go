package api

import (
	"errors"
	"fmt"
)

// Error is the single normalized failure surfaced by the client. Its
// message is meant to be shown to the user as is.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of an *Error in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	return 0
}

func defaultFailureMessage(status int) string {
	return fmt.Sprintf("Request failed (%d)", status)
}
