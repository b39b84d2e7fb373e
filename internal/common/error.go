// Package common defines shared constants and sentinel errors used across
// client and server layers of CosmosPT. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorConflict      = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")

	// Progression errors. An achievement id outside the user's fixed set is
	// reported separately from a missing user.
	ErrAchievementNotFound = errors.New("achievement not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
