package domain

import "errors"

var (
	ErrNoSession       = errors.New("no active session")
	ErrUnknownRole     = errors.New("unknown role")
	ErrRoleMismatch    = errors.New("account role does not match selected role")
	ErrNoNearestBiker  = errors.New("no biker available right now")
	ErrProductNotFound = errors.New("product not found")
	ErrCancelled       = errors.New("cancelled")
	ErrResendCooldown  = errors.New("verification code resend is cooling down")
)

// ValidationError is a form failure shown inline next to the form. It is
// raised before any request is issued.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
