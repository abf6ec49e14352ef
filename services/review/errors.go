package review

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden       = errors.New("not allowed to change this review")
	ErrAlreadyReported = errors.New("review already reported")
)

// ValidationError describes rejected review input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}
