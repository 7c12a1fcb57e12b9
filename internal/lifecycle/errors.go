package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"mk-orders/internal/models"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrValidation       = errors.New("validation")
	ErrStoreUnavailable = errors.New("order store unavailable")
)

// StateError reports a trigger fired from a status that does not allow it.
type StateError struct {
	From    models.Status
	Trigger Trigger
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s order in status %q", e.Trigger, e.From)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ValidationError wraps a validator failure into ErrValidation with a readable message.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validationf("%s", HumanizeValidationErrors(verrs))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func HumanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}
