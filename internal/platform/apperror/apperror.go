package apperror

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Kind classifies an error so the HTTP boundary can pick a status code
// without inspecting message text.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindConflict
	KindDenied
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindDenied:
		return "denied"
	default:
		return "internal"
	}
}

// Error is the result type every service operation returns on failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never shown to the caller
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Deniedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindDenied, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The cause stays attached for
// logging; the caller only ever sees the generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// As extracts an *Error, wrapping anything unclassified as internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Postgres error codes worth translating into the taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromDB maps persistence-layer failures onto the taxonomy: missing rows
// become NotFound, unique-key collisions become Conflict, broken
// references become Validation, everything else is internal.
func FromDB(err error, notFoundMsg string) *Error {
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundf("%s", notFoundMsg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return Conflictf("duplicate value violates a uniqueness rule")
		case pgForeignKeyViolation:
			return Validationf("referenced record does not exist")
		}
	}
	return Internal(err)
}
