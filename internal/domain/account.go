package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the account roles recognized across the platform.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleGuest     Role = "guest"
	RolePremium   Role = "premium"
)

// ValidRole reports whether the given role is one of the recognized values.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleModerator, RoleGuest, RolePremium:
		return true
	}
	return false
}

// TokenPurpose tags the pending one-time secret slots on an account.
// At most one pending secret exists per purpose; issuing a new one overwrites it.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
	PurposeOTP               TokenPurpose = "otp"
)

// TokenRecord is a pending one-time secret: the sha256 fingerprint of the
// plaintext and its expiry. The plaintext itself is never stored.
type TokenRecord struct {
	Hash      string
	ExpiresAt time.Time
}

// Expired reports whether the record's window has passed at the given instant.
func (t TokenRecord) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Account is the canonical identity aggregate for the account service.
// It owns credential, verification, block, and single-session refresh state so
// the lifecycle engine never has to consult more than one record.
type Account struct {
	AccountID     uuid.UUID
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	PasswordHash  string
	Role          Role

	EmailVerified    bool
	TwoFactorEnabled bool

	IsBlocked    bool
	BlockedUntil *time.Time

	// Pending one-time secrets, keyed by purpose. Nil means no secret pending.
	VerificationToken *TokenRecord
	ResetToken        *TokenRecord
	OTPToken          *TokenRecord

	// RefreshToken is the single active session token. Every issuance
	// overwrites it, so a second login revokes the first session.
	RefreshToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingToken returns the record slot for the given purpose.
func (a Account) PendingToken(purpose TokenPurpose) *TokenRecord {
	switch purpose {
	case PurposeEmailVerification:
		return a.VerificationToken
	case PurposePasswordReset:
		return a.ResetToken
	case PurposeOTP:
		return a.OTPToken
	}
	return nil
}

// BlockRemaining returns how long the block lasts from the given instant.
// Zero means the block window has already passed.
func (a Account) BlockRemaining(now time.Time) time.Duration {
	if a.BlockedUntil == nil || !a.BlockedUntil.After(now) {
		return 0
	}
	return a.BlockedUntil.Sub(now)
}
