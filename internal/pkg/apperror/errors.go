// Package apperror defines the coded errors services return to the HTTP layer.
//
// Services return one of the constructors below; the fiber error handler maps
// the Code to a status and renders Message (and Fields for validation).
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

type Code string

const (
	CodeAuthFailure     Code = "AUTH_FAILURE"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeValidation      Code = "VALIDATION"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuthFailure, CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FieldErrors maps a request field (JSON name) to its messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

type Error struct {
	Code    Code
	Message string
	Fields  FieldErrors
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Sentinels for errors.Is checks.
var (
	ErrAuthFailure     = &Error{Code: CodeAuthFailure}
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated}
	ErrValidation      = &Error{Code: CodeValidation}
	ErrNotFound        = &Error{Code: CodeNotFound}
)

func AuthFailure() *Error {
	return &Error{Code: CodeAuthFailure, Message: "Invalid credentials."}
}

func Unauthenticated() *Error {
	return &Error{Code: CodeUnauthenticated, Message: "Unauthenticated."}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Validation builds a 422 error; the message is the first field message,
// followed by a count of the others, like Laravel does.
func Validation(fields FieldErrors) *Error {
	return &Error{Code: CodeValidation, Message: summarize(fields), Fields: fields}
}

func ValidationField(field, message string) *Error {
	return Validation(FieldErrors{field: {message}})
}

func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, cause: cause}
}

func summarize(fields FieldErrors) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	first := ""
	for _, name := range names {
		for _, m := range fields[name] {
			if first == "" {
				first = m
			}
			total++
		}
	}
	switch {
	case total == 0:
		return "The given data was invalid."
	case total == 1:
		return first
	case total == 2:
		return fmt.Sprintf("%s (and 1 more error)", first)
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, total-1)
	}
}
