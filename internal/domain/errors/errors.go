// Package errors defines the application error taxonomy shared by the use case and delivery layers.
package errors

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an application error independently of its transport mapping.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindConfiguration  Kind = "configuration"
	KindInternal       Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error category
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches on the error code so that copies made by WithDetails still match the sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() any {
	return e.details
}

// WithDetails returns a copy carrying detailed error information
func (e *BaseError) WithDetails(details any) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)

	// Account-related errors
	ErrAccountNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No active account matches the given identifier",
	)

	ErrVerificationTokenInvalid = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"VERIFICATION_TOKEN_INVALID",
		"Invalid or expired verification token",
	)

	ErrTokenIssuanceExhausted = NewBaseError(
		KindConflict,
		http.StatusInternalServerError,
		"TOKEN_ISSUANCE_EXHAUSTED",
		"Could not issue a unique verification token",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect password",
	)

	ErrAccessTokenInvalid = NewBaseError(
		KindAuthentication,
		http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID",
		"Invalid or expired access token",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
	)

	// Startup errors
	ErrConfiguration = NewBaseError(
		KindConfiguration,
		http.StatusInternalServerError,
		"CONFIGURATION_ERROR",
		"Service is misconfigured",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// PasswordRule identifies one clause of the password policy.
type PasswordRule string

const (
	PasswordRuleMinLength        PasswordRule = "min_length"
	PasswordRuleMaxLength        PasswordRule = "max_length"
	PasswordRuleMixedCase        PasswordRule = "mixed_case"
	PasswordRuleDigit            PasswordRule = "digit"
	PasswordRuleSpecialCharacter PasswordRule = "special_character"
)

// PasswordPolicyError lists every policy rule a candidate password violates.
type PasswordPolicyError struct {
	Rules []PasswordRule
}

// NewPasswordPolicyError creates a policy error for the given violated rules
func NewPasswordPolicyError(rules ...PasswordRule) *PasswordPolicyError {
	return &PasswordPolicyError{Rules: rules}
}

// Error implements the error interface
func (e *PasswordPolicyError) Error() string {
	names := make([]string, 0, len(e.Rules))
	for _, rule := range e.Rules {
		names = append(names, string(rule))
	}

	return "password violates policy: " + strings.Join(names, ", ")
}

// Has reports whether rule is among the violations.
func (e *PasswordPolicyError) Has(rule PasswordRule) bool {
	for _, r := range e.Rules {
		if r == rule {
			return true
		}
	}

	return false
}

func (e *PasswordPolicyError) Kind() Kind        { return KindValidation }
func (e *PasswordPolicyError) HTTPCode() int     { return http.StatusBadRequest }
func (e *PasswordPolicyError) ErrorCode() string { return "PASSWORD_POLICY" }
func (e *PasswordPolicyError) Message() string   { return "Password does not meet security requirements" }

// Details returns the violated rules
func (e *PasswordPolicyError) Details() any {
	return map[string]any{"rules": e.Rules}
}

// Account fields that may collide on registration.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

// AccountConflictError reports which unique account fields are already in use.
type AccountConflictError struct {
	Fields []string
}

// NewAccountConflictError creates a conflict error for the colliding fields
func NewAccountConflictError(fields ...string) *AccountConflictError {
	return &AccountConflictError{Fields: fields}
}

// Error implements the error interface
func (e *AccountConflictError) Error() string {
	return "account already exists: " + strings.Join(e.Fields, ", ") + " taken"
}

// Has reports whether field collided.
func (e *AccountConflictError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}

	return false
}

func (e *AccountConflictError) Kind() Kind        { return KindConflict }
func (e *AccountConflictError) HTTPCode() int     { return http.StatusBadRequest }
func (e *AccountConflictError) ErrorCode() string { return "ACCOUNT_CONFLICT" }

// Message names the colliding fields
func (e *AccountConflictError) Message() string {
	return "Already registered: " + strings.Join(e.Fields, ", ")
}

// Details returns the colliding fields
func (e *AccountConflictError) Details() any {
	return map[string]any{"fields": e.Fields}
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) Kind() Kind        { return KindInternal }
func (e *DatabaseExecuteError) HTTPCode() int     { return http.StatusInternalServerError }
func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }
func (e *DatabaseExecuteError) Message() string   { return "Database execution failed" }

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() any {
	return e.details
}
