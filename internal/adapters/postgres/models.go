package postgres

import (
	"time"

	"github.com/google/uuid"
)

type accountModel struct {
	AccountID     uuid.UUID `gorm:"column:account_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username      string    `gorm:"column:username"`
	Email         string    `gorm:"column:email"`
	FullName      string    `gorm:"column:full_name"`
	AvatarURL     string    `gorm:"column:avatar_url"`
	CoverImageURL string    `gorm:"column:cover_image_url"`
	PasswordHash  string    `gorm:"column:password_hash"`
	Role          string    `gorm:"column:role"`

	EmailVerified    bool `gorm:"column:email_verified"`
	TwoFactorEnabled bool `gorm:"column:two_factor_enabled"`

	IsBlocked    bool       `gorm:"column:is_blocked"`
	BlockedUntil *time.Time `gorm:"column:blocked_until"`

	VerificationTokenHash      *string    `gorm:"column:verification_token_hash"`
	VerificationTokenExpiresAt *time.Time `gorm:"column:verification_token_expires_at"`
	ResetTokenHash             *string    `gorm:"column:reset_token_hash"`
	ResetTokenExpiresAt        *time.Time `gorm:"column:reset_token_expires_at"`
	OTPHash                    *string    `gorm:"column:otp_hash"`
	OTPExpiresAt               *time.Time `gorm:"column:otp_expires_at"`

	RefreshToken *string `gorm:"column:refresh_token"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }
