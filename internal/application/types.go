package application

import (
	"time"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/google/uuid"
)

type Config struct {
	DefaultRole          domain.Role
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	OTPTokenTTL          time.Duration
	BlockDuration        time.Duration
	FailedLoginThreshold int
	LockoutDuration      time.Duration
	PublicBaseURL        string
	SweepBatchSize       int
}

type RegisterRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	AvatarURL     string `json:"avatar_url"`
	CoverImageURL string `json:"cover_image_url"`
}

// AccountView is the sanitized account representation. Password hashes,
// pending secrets, and the stored refresh token never leave the service.
type AccountView struct {
	AccountID        uuid.UUID   `json:"account_id"`
	Username         string      `json:"username"`
	Email            string      `json:"email"`
	FullName         string      `json:"full_name"`
	AvatarURL        string      `json:"avatar_url,omitempty"`
	CoverImageURL    string      `json:"cover_image_url,omitempty"`
	Role             domain.Role `json:"role"`
	EmailVerified    bool        `json:"email_verified"`
	TwoFactorEnabled bool        `json:"two_factor_enabled"`
	IsBlocked        bool        `json:"is_blocked"`
	BlockedUntil     *time.Time  `json:"blocked_until,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type LoginResponse struct {
	RequiresOTP  bool         `json:"requires_otp"`
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	Account      *AccountView `json:"account,omitempty"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	Account      *AccountView `json:"account,omitempty"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	CoverImageURL string `json:"cover_image_url"`
}

type ListAccountsQuery struct {
	Search  string
	Role    string
	Blocked *bool
	Page    int
	Limit   int
}

type AccountListResponse struct {
	Accounts []AccountView `json:"accounts"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
}

func toAccountView(a domain.Account) AccountView {
	return AccountView{
		AccountID:        a.AccountID,
		Username:         a.Username,
		Email:            a.Email,
		FullName:         a.FullName,
		AvatarURL:        a.AvatarURL,
		CoverImageURL:    a.CoverImageURL,
		Role:             a.Role,
		EmailVerified:    a.EmailVerified,
		TwoFactorEnabled: a.TwoFactorEnabled,
		IsBlocked:        a.IsBlocked,
		BlockedUntil:     a.BlockedUntil,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
