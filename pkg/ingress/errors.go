// pkg/ingress/errors.go
package ingress

import (
	"errors"
	"fmt"
)

// Kind classifies request failures. Everything through coercion is fatal to
// the request; load failures are folded into the result instead of raised.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConnection: source unreachable or authentication rejected.
	KindConnection
	// KindQuery: source-side SQL failure or extraction timeout.
	KindQuery
	// KindUnknownEntity: entity tag not registered.
	KindUnknownEntity
	// KindFormat: uploaded file extension/content not recognized.
	KindFormat
	// KindParse: a temporal field could not be coerced.
	KindParse
	// KindLoad: warehouse insert failed. Never surfaced as a request
	// failure; recorded here for logging only.
	KindLoad
)

// String returns a string representation of the error kind
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "ConnectionError"
	case KindQuery:
		return "QueryError"
	case KindUnknownEntity:
		return "UnknownEntity"
	case KindFormat:
		return "FormatError"
	case KindParse:
		return "ParseError"
	case KindLoad:
		return "LoadError"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Error is a classified request failure. Messages are safe to surface to
// callers: connection errors have credentials redacted before they get here.
type Error struct {
	kind    Kind
	message string
	err     error
}

// NewError creates a classified error wrapping an underlying cause.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{kind: kind, message: message, err: err}
}

func (e *Error) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.kind.String()
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.err
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report KindUnknown.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind()
	}
	return KindUnknown
}

// IsClientError reports whether the failure was caused by the caller's
// input rather than this service.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindConnection, KindQuery, KindUnknownEntity, KindFormat, KindParse:
		return true
	default:
		return false
	}
}
