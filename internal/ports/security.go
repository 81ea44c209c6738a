package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AccessClaims is the short-lived token payload. Display fields are
// denormalized into the token so reads never need an account lookup.
type AccessClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshClaims carries only the account identity. Everything else needed to
// honor a refresh lives on the account record.
type RefreshClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenCodec signs and verifies the two session token flavors with independent
// secrets. Verification is pure; rotation state stays in the lifecycle engine.
type TokenCodec interface {
	SignAccess(claims AccessClaims) (string, error)
	SignRefresh(claims RefreshClaims) (string, error)
	ParseAccess(token string) (AccessClaims, error)
	ParseRefresh(token string) (RefreshClaims, error)
}
