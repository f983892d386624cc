package patient

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
)

// MissingFieldError reports a mandatory form field that was not submitted.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TypeCoercionError reports a numeric field whose value does not parse.
type TypeCoercionError struct {
	Field string
	Value string
	Kind  Kind
	Err   error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("field %q: %q is not a valid %s", e.Field, e.Value, e.Kind)
}

func (e *TypeCoercionError) Unwrap() error { return e.Err }

// FieldErrors collects every field problem found in one form.
type FieldErrors []error

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, err := range fe {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func (fe FieldErrors) Unwrap() []error { return fe }

// Fields names the offending fields, in the order they were found.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for _, err := range fe {
		var missing *MissingFieldError
		var coercion *TypeCoercionError
		switch {
		case errors.As(err, &missing):
			fields = append(fields, missing.Field)
		case errors.As(err, &coercion):
			fields = append(fields, coercion.Field)
		}
	}
	return fields
}

// IsInputError reports whether err came from a malformed or incomplete form.
func IsInputError(err error) bool {
	var missing *MissingFieldError
	var coercion *TypeCoercionError
	return errors.As(err, &missing) || errors.As(err, &coercion)
}
