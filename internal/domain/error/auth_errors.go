// Package error defines the domain error types and the stable error codes
// the API reports. Codes follow AUTH-XXYYYY / EMAIL-XXYYYY where XX is the
// category and YYYY the specific failure. Clients match on codes, so a code
// never changes meaning once released.
package error

import "errors"

// Sentinel causes carried inside AuthError. Callers match with errors.Is
// where the code alone is too coarse.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrRoleNotAllowed rejects self-service signup for roles that only an
	// administrator may grant.
	ErrRoleNotAllowed = errors.New("role cannot be self-assigned")
)

// AuthErrorCode identifies an authentication failure.
type AuthErrorCode string

// The code registry. Category 01 is registration, 02 login, 03 tokens and
// permissions, 04 password reset.
const (
	ErrCodeEmailExists    AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidEmail   AuthErrorCode = "AUTH-010002"
	ErrCodeMissingFields  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidRole    AuthErrorCode = "AUTH-010004"
	ErrCodeRoleNotAllowed AuthErrorCode = "AUTH-010005"

	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
	ErrCodeAccountLocked      AuthErrorCode = "AUTH-020004"

	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
	ErrCodeForbidden    AuthErrorCode = "AUTH-030004"

	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"
)

// AuthError pairs a stable code with a human-readable message. Message is
// what the API returns to the caller; Err carries the internal cause.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError pairs a stable code with a human-readable message and
// an optional underlying cause.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
