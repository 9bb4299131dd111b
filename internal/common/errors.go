// Package common defines shared constants and sentinel errors used across
// the admin client and the development server. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (client-side, raised before any network call).
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrCodeExpired   = errors.New("verification code expired")
	ErrNoPendingCode = errors.New("no verification code requested for this email")

	// Resource errors.
	ErrNameTaken = errors.New("name already taken")
)
