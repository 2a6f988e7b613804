// Package apperr defines the closed set of error kinds returned by services.
// Handlers translate a kind into a status code and envelope code; callers
// match on Kind with errors.As or the Is helper, never on the message.
package apperr

import (
	"errors"
)

type Kind string

const (
	KindValidation             Kind = "validation"
	KindNotFoundOrUnauthorized Kind = "not_found_or_unauthorized"
	KindPlanNotFound           Kind = "plan_not_found"
	KindInvalidDateRange       Kind = "invalid_date_range"
	KindInvalidTransition      Kind = "invalid_transition"
	KindConflict               Kind = "conflict"
	KindNotFound               Kind = "not_found"
	KindUnauthenticated        Kind = "unauthenticated"
	KindForbidden              Kind = "forbidden"
	KindServer                 Kind = "server"
)

// FieldError attributes a failure to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Fields: fields}
}

func Field(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindServer, Message: "Internal server error", Err: err}
}

// KindOf reports the kind carried by err. Errors that are not *Error are
// unexpected failures and report KindServer.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
