package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindNotFound          Kind = "NOT_FOUND"
	KindValidation        Kind = "VALIDATION_ERROR"
	KindUnsupportedFormat Kind = "UNSUPPORTED_FORMAT"
	KindInsufficientText  Kind = "INSUFFICIENT_TEXT"
	KindConflict          Kind = "CONFLICT"
	KindExternalService   Kind = "EXTERNAL_SERVICE_ERROR"
	KindMalformedAnalysis Kind = "MALFORMED_ANALYSIS"
	KindInternal          Kind = "INTERNAL"
)

// Error is the typed error returned by services. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, apperror.NotFound("")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func UnsupportedFormat(message string, err error) *Error {
	return New(KindUnsupportedFormat, message, err)
}

func InsufficientText(message string, err error) *Error {
	return New(KindInsufficientText, message, err)
}

func Conflict(message string) *Error {
	return New(KindConflict, message, nil)
}

func ExternalService(message string, err error) *Error {
	return New(KindExternalService, message, err)
}

func MalformedAnalysis(message string, err error) *Error {
	return New(KindMalformedAnalysis, message, err)
}

func Internal(message string, err error) *Error {
	return New(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
