package user

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrForbidden          = errors.New("not allowed to manage this account")
	ErrHasActiveBookings  = errors.New("worker has active bookings")
)

// ValidationError describes rejected account input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}
