package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

// Login authenticates with username or email plus password. Checks run in a
// fixed order so the caller always learns the earliest failing condition:
// existence, email verification, block state, then the password itself.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.UsernameOrEmail))
	if identifier == "" {
		return LoginResponse{}, fmt.Errorf("%w: username or email is required", domain.ErrInvalidInput)
	}
	if req.Password == "" {
		return LoginResponse{}, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	lockKey := "login:" + identifier
	lockState, err := s.lockouts.Get(ctx, lockKey)
	if err == nil && lockState.LockedUntil != nil && lockState.LockedUntil.After(s.nowFn()) {
		return LoginResponse{}, domain.ErrAccountLocked
	}

	account, err := s.accounts.GetByLogin(ctx, identifier)
	if err != nil {
		return LoginResponse{}, err
	}
	if !account.EmailVerified {
		return LoginResponse{}, domain.ErrEmailNotVerified
	}
	if account.IsBlocked {
		remaining := account.BlockRemaining(s.nowFn())
		days := int(remaining.Hours()/24) + 1
		return LoginResponse{}, fmt.Errorf("%w: try again after %d day(s)", domain.ErrAccountBlocked, days)
	}
	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		_, _ = s.lockouts.RecordFailure(ctx, lockKey, s.nowFn(), s.cfg.FailedLoginThreshold, s.cfg.LockoutDuration)
		return LoginResponse{}, domain.ErrInvalidCredentials
	}
	_ = s.lockouts.Clear(ctx, lockKey)

	if account.TwoFactorEnabled {
		if err := s.sendLoginOTP(ctx, account); err != nil {
			return LoginResponse{}, err
		}
		return LoginResponse{RequiresOTP: true}, nil
	}

	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Account:      pair.Account,
	}, nil
}

// sendLoginOTP stores a short-lived numeric challenge and emails it.
// The password step already passed; tokens are withheld until VerifyLoginOTP.
func (s *Service) sendLoginOTP(ctx context.Context, account domain.Account) error {
	code, err := randomDigits(6)
	if err != nil {
		return err
	}
	now := s.nowFn()
	rec := &domain.TokenRecord{
		Hash:      hashToken(code),
		ExpiresAt: now.Add(s.cfg.OTPTokenTTL),
	}
	if err := s.accounts.SetPendingToken(ctx, account.AccountID, domain.PurposeOTP, rec, now); err != nil {
		return err
	}
	return s.dispatchOrRollback(ctx, account, domain.PurposeOTP, ports.EmailMessage{
		To:      account.Email,
		ToName:  account.FullName,
		Subject: "Your one-time login code",
		TextBody: "Hello " + account.FullName + ",\n\n" +
			"Your one-time login code is " + code + ". It expires in " +
			formatMinutes(s.cfg.OTPTokenTTL) + ".\n",
	})
}

// VerifyLoginOTP completes a two-factor login. Consuming the challenge and
// issuing the pair mirrors the password-only path's final step.
func (s *Service) VerifyLoginOTP(ctx context.Context, otp string) (TokenPairResponse, error) {
	if strings.TrimSpace(otp) == "" {
		return TokenPairResponse{}, fmt.Errorf("%w: otp is required", domain.ErrInvalidInput)
	}
	account, err := s.accounts.ConsumeOTPToken(ctx, hashToken(otp), s.nowFn())
	if err != nil {
		return TokenPairResponse{}, err
	}
	return s.issueTokens(ctx, account)
}

// Refresh rotates the session pair. The presented token must verify against
// the refresh secret and equal the stored value exactly; a token that was
// already rotated is treated the same as a forged one.
func (s *Service) Refresh(ctx context.Context, presented string) (TokenPairResponse, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return TokenPairResponse{}, domain.ErrUnauthorized
	}
	claims, err := s.tokens.ParseRefresh(presented)
	if err != nil {
		return TokenPairResponse{}, domain.ErrUnauthorized
	}
	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		return TokenPairResponse{}, domain.ErrUnauthorized
	}
	if account.RefreshToken == "" || account.RefreshToken != presented {
		return TokenPairResponse{}, domain.ErrRefreshTokenMismatch
	}
	return s.issueTokens(ctx, account)
}

// Authenticate validates a raw access token and returns its claims. Any
// signature, expiry, or parse failure collapses to ErrUnauthorized.
func (s *Service) Authenticate(_ context.Context, rawToken string) (ports.AccessClaims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ports.AccessClaims{}, domain.ErrUnauthorized
	}
	claims, err := s.tokens.ParseAccess(rawToken)
	if err != nil {
		return ports.AccessClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// Logout clears the stored refresh token. It is idempotent: logging out twice,
// or after the account disappeared, still succeeds.
func (s *Service) Logout(ctx context.Context, accountID uuid.UUID) error {
	err := s.accounts.SetRefreshToken(ctx, accountID, "", s.nowFn())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
