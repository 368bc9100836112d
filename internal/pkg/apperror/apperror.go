package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the categories the transport
// layer knows how to map. Anything outside the taxonomy is treated as
// StoreUnavailable by the error handler: internal detail never reaches
// the caller.
type Kind int

const (
	// KindUnauthenticated means no identity could be resolved for a
	// call that requires one. Maps to 401.
	KindUnauthenticated Kind = iota

	// KindNotFound covers both a genuinely absent resource and an
	// ownership mismatch. The two are deliberately indistinguishable
	// so a non-owner cannot probe for the existence of other users'
	// resources. Maps to 404, never 403.
	KindNotFound

	// KindValidation is a missing or malformed required field. The
	// offending field name travels with the error. Maps to 400.
	KindValidation

	// KindStoreUnavailable is a transient infrastructure failure. It is
	// the only retryable kind; retries must re-run the whole operation.
	// Maps to 500.
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "store_unavailable"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Field   string // set for KindValidation
	Err     error  // wrapped cause, for logs only
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

// SafeMessage is what the caller is allowed to see.
func (e *Error) SafeMessage() string {
	if e.Kind == KindStoreUnavailable {
		return "service temporarily unavailable"
	}
	return e.Message
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Validation(field string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "missing or invalid field: " + field,
		Field:   field,
	}
}

func StoreUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "store operation failed", Err: err}
}

// KindOf extracts the taxonomy kind from any error chain. Errors that
// never went through this package classify as StoreUnavailable.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreUnavailable
}

// As is a convenience wrapper around errors.As for *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsRetryable reports whether a caller may retry the whole operation.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}
