package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validationError flattens validator output into one ValidationError.
func validationError(err error) *BookingError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &BookingError{Kind: ErrValidation, Message: "invalid input", Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
	}
	return &BookingError{Kind: ErrValidation, Message: strings.Join(msgs, "; ")}
}

func checkLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return newError(ErrValidation, "%s must be at most %d characters", field, max)
	}
	return nil
}
