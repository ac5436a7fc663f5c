package learning

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so callers can react without string
// matching. Storage errors are transient from the engine's point of view —
// retries belong to the caller, never the engine.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
	KindInternal   Kind = "internal"
)

// Error is the typed domain error: a kind, the operation that failed, an
// optional human-readable suggestion, and the underlying cause.
type Error struct {
	Kind       Kind
	Op         string
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind extracts the Kind from any error chain, defaulting to internal.
func ErrorKind(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

// SuggestionOf extracts the suggestion from an error chain, if any.
func SuggestionOf(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Suggestion
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return ErrorKind(err) == KindValidation
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return ErrorKind(err) == KindNotFound
}

func validationErr(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Err: errors.New(msg)}
}

func notFoundErr(op, what string) error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf("%s not found", what)}
}

func storageErr(op string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{
		Kind:       KindStorage,
		Op:         op,
		Suggestion: "the store may be busy; retry the call",
		Err:        err,
	}
}

// internalErr wraps an unrecognized failure without losing its cause.
func internalErr(op string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{Kind: KindInternal, Op: op, Err: err}
}
