// Package apperr defines the error type every client-visible failure is
// expressed in, and the mapping from storage errors onto it.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeUniqueViolation     = "UNIQUE_CONSTRAINT_VIOLATION"
	CodeBadRequest          = "BAD_REQUEST"
	CodeForeignKeyViolation = "FOREIGN_KEY_CONSTRAINT_VIOLATION"
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeRateLimited         = "RATE_LIMIT_EXCEEDED"
	CodeAuthRateLimited     = "AUTH_RATE_LIMIT_EXCEEDED"
	CodeUploadRateLimited   = "UPLOAD_RATE_LIMIT_EXCEEDED"
	CodeDatabase            = "DATABASE_ERROR"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
)

// Error is a failure with an HTTP status, a stable code and optional details.
type Error struct {
	Status  int
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	return New(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, CodeConflict, message)
}

func Validation(details interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeValidation, "Validation failed").WithDetails(details)
}

func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error", Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// FromDB maps a gorm/driver error onto the error taxonomy. Errors that are
// already *Error pass through untouched.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Record not found", Err: err}
	case isUniqueViolation(err):
		return &Error{Status: http.StatusConflict, Code: CodeUniqueViolation, Message: "A record with this value already exists", Err: err}
	case isForeignKeyViolation(err):
		return &Error{Status: http.StatusBadRequest, Code: CodeForeignKeyViolation, Message: "Related record not found", Err: err}
	}
	return &Error{Status: http.StatusInternalServerError, Code: CodeDatabase, Message: "Database operation failed", Err: err}
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
func IsUniqueViolation(err error) bool {
	return isUniqueViolation(err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}
