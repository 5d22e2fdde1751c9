package domain

import (
	apperrors "github.com/allisson/sharelink/internal/errors"
)

// Error is a presentation rejection. It unwraps to the generic category used for
// HTTP mapping and exposes a stable reason code so clients can react to it.
type Error struct {
	kind    error
	code    string
	message string
}

func newError(kind error, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

func (e *Error) Error() string {
	return e.message
}

// Unwrap returns the generic error category.
func (e *Error) Unwrap() error {
	return e.kind
}

// ErrorCode returns the machine-readable reason.
func (e *Error) ErrorCode() string {
	return e.code
}

// Presentation rejections, in gate evaluation order.
var (
	ErrMalformedToken = newError(apperrors.ErrBadRequest, "malformed_token", "malformed token")

	// ErrTamperedToken covers bit flips, wrong key and truncation.
	ErrTamperedToken = newError(apperrors.ErrUnauthorized, "token_tampered", "token failed integrity check")

	ErrTokenExpired = newError(apperrors.ErrUnauthorized, "token_expired", "token expired")

	ErrResourceNotFound = newError(apperrors.ErrNotFound, "resource_not_found", "resource not found")

	// ErrHitLimitExceeded messages always contain "hit limit exceeded".
	ErrHitLimitExceeded = newError(apperrors.ErrBadRequest, "hit_limit_exceeded", "hit limit exceeded")

	ErrInvalidClaim = newError(apperrors.ErrBadRequest, "invalid_claim", "token does not grant access to this resource")

	ErrPasswordMismatch = newError(apperrors.ErrBadRequest, "password_mismatch", "incorrect password")

	// ErrInvalidPayload is returned at issuance for payloads breaking structural invariants.
	ErrInvalidPayload = newError(apperrors.ErrInvalidInput, "invalid_payload", "invalid capability payload")
)
