package ports

import (
	"context"
	"time"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/google/uuid"
)

// CreateAccountParams captures the initial persisted state of an account.
// Registration always starts unverified, unblocked, and without pending secrets.
type CreateAccountParams struct {
	Username      string
	Email         string
	FullName      string
	AvatarURL     string
	CoverImageURL string
	PasswordHash  string
	Role          domain.Role
	RegisteredAt  time.Time
}

// ProfileUpdate carries the mutable profile fields. Empty strings leave the
// current value in place.
type ProfileUpdate struct {
	FullName      string
	Email         string
	Username      string
	AvatarURL     string
	CoverImageURL string
}

// ListAccountsParams is the admin listing filter set.
type ListAccountsParams struct {
	Search  string
	Role    domain.Role
	Blocked *bool
	Limit   int
	Offset  int
}

// AccountRepository defines persistence operations for account aggregates.
// Consume methods pair the one-time-secret check with the state change it
// authorizes inside a single transaction, so a secret can never be spent twice.
type AccountRepository interface {
	Create(ctx context.Context, params CreateAccountParams) (domain.Account, error)
	GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (domain.Account, error)

	SetPendingToken(ctx context.Context, accountID uuid.UUID, purpose domain.TokenPurpose, rec *domain.TokenRecord, updatedAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, tokenHash string, now time.Time) (domain.Account, error)
	ConsumePasswordResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (domain.Account, error)
	ConsumeOTPToken(ctx context.Context, tokenHash string, now time.Time) (domain.Account, error)

	SetRefreshToken(ctx context.Context, accountID uuid.UUID, refreshToken string, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, accountID uuid.UUID, passwordHash string, updatedAt time.Time) error
	UpdateProfile(ctx context.Context, accountID uuid.UUID, update ProfileUpdate, updatedAt time.Time) (domain.Account, error)
	SetTwoFactor(ctx context.Context, accountID uuid.UUID, enabled bool, updatedAt time.Time) error

	SetBlocked(ctx context.Context, accountID uuid.UUID, blocked bool, blockedUntil *time.Time, updatedAt time.Time) error
	ListExpiredBlocks(ctx context.Context, now time.Time, limit int) ([]domain.Account, error)

	List(ctx context.Context, params ListAccountsParams) ([]domain.Account, int64, error)
	UpdateRole(ctx context.Context, accountID uuid.UUID, role domain.Role, updatedAt time.Time) error
	Delete(ctx context.Context, accountID uuid.UUID) error
}
