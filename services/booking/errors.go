package booking

import (
	"errors"
	"fmt"

	"homeserve/models"
)

// Error kinds. Every error returned by the booking service matches exactly
// one of these through errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidAddon       = errors.New("invalid addon")
	ErrSchedulingConflict = errors.New("scheduling conflict")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation error")
	ErrStorage            = errors.New("storage error")
)

var errorKinds = []error{
	ErrNotFound,
	ErrInvalidAddon,
	ErrSchedulingConflict,
	ErrInvalidTransition,
	ErrForbidden,
	ErrValidation,
	ErrStorage,
}

// BookingError carries a kind, a caller-facing message and an optional cause.
type BookingError struct {
	Kind    error
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookingError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, format string, args ...interface{}) *BookingError {
	return &BookingError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// storageError classifies a repository failure: missing documents become
// ErrNotFound, everything else ErrStorage.
func storageError(err error, format string, args ...interface{}) *BookingError {
	kind := ErrStorage
	if errors.Is(err, models.ErrNotFound) {
		kind = ErrNotFound
	}
	return &BookingError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the error kind of err, or nil for foreign errors.
func KindOf(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// MessageOf returns the caller-facing message of a booking error.
func MessageOf(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
