// Package nameerrors defines the closed set of error kinds the
// normalization pipeline can surface to its caller.
package nameerrors

import "fmt"

// Kind classifies a pipeline failure so callers (HTTP adapter, golden
// runner) can map it to a status class without string matching.
type Kind string

const (
	// InvalidInput covers empty text, oversize input, or malformed
	// encoding that recovery could not repair.
	InvalidInput Kind = "invalid_input"
	// LanguageUnknown is non-fatal: the pipeline proceeds with
	// language=unknown and best-effort tokenization.
	LanguageUnknown Kind = "language_unknown"
	// MorphologyFailure covers a dictionary miss or analyzer panic
	// recovered at the token boundary; non-fatal.
	MorphologyFailure Kind = "morphology_failure"
	// Timeout is returned when a request's deadline is exceeded
	// between pipeline stages.
	Timeout Kind = "timeout"
	// InternalFailure covers unexpected bugs caught at the
	// orchestrator boundary.
	InternalFailure Kind = "internal_failure"
)

// Error is the pipeline's error type. Stage functions return it (or
// nil) instead of raising; exceptions/panics are reserved for
// programmer bugs and are recovered only at the orchestrator boundary.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Fatal reports whether this kind should abort the pipeline rather
// than degrade to a fallback result.
func (e *Error) Fatal() bool {
	switch e.kind {
	case InvalidInput, Timeout, InternalFailure:
		return true
	default:
		return false
	}
}

// KindOf extracts the Kind from any error, defaulting to
// InternalFailure for errors not produced by this package.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if ok := asError(err, &e); ok {
		return e.kind
	}
	return InternalFailure
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
