// Package apperr defines the error kinds shared by every domain package.
//
// Domain packages declare sentinel errors built with New (the same way the
// rest of the codebase declares `var ErrX = errors.New(...)`), and HTTP
// handlers translate the kind into a status code through response.FromError.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindAuthorization
	KindInvalidState
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthorization:
		return "authorization"
	case KindInvalidState:
		return "invalid_state_transition"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// Error is a typed application error. Code is a stable machine-readable
// identifier (VALIDATION_ERROR, INVALID_STATUS_TRANSITION, ...).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation builds an ad-hoc validation error for input that has no
// dedicated sentinel.
func Validation(message string) *Error {
	return New(KindValidation, "VALIDATION_ERROR", message)
}

// Dependency wraps a backend failure. op names the failed operation.
func Dependency(err error, op string) *Error {
	return Wrap(err, KindDependency, "DEPENDENCY_ERROR", op+" failed")
}

// FromRepo converts a repository error: record-not-found becomes notFound,
// typed application errors pass through, everything else is a dependency
// failure.
func FromRepo(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Dependency(err, op)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
