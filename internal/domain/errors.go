package domain

import "errors"

var (
	// ErrNotFound is returned when the requested account does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("account not found")
	// ErrInvalidCredentials hides whether the identifier or the password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid account credentials")
	// ErrInvalidOrExpiredToken covers both wrong and expired one-time secrets.
	// Callers must not be able to distinguish the two cases.
	ErrInvalidOrExpiredToken = errors.New("token is invalid or expired")
	// ErrRefreshTokenMismatch signals a refresh token that was already rotated or revoked.
	ErrRefreshTokenMismatch = errors.New("refresh token is expired or used")
	// ErrAccountBlocked is returned while an administrative block is in force.
	ErrAccountBlocked = errors.New("account is blocked")
	// ErrEmailNotVerified gates login until the verification link was followed.
	ErrEmailNotVerified = errors.New("email is not verified")
	// ErrMailerUnavailable reports a failed outbound email dispatch.
	ErrMailerUnavailable = errors.New("email dispatch failed")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrAccountLocked     = errors.New("account locked")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
)
