package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

// ForgotPassword stores a one-time reset secret and emails the reset link.
// A send failure clears the stored secret before reporting the outage.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}

	secret, err := randomHex(32)
	if err != nil {
		return err
	}
	now := s.nowFn()
	rec := &domain.TokenRecord{
		Hash:      hashToken(secret),
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
	}
	if err := s.accounts.SetPendingToken(ctx, account.AccountID, domain.PurposePasswordReset, rec, now); err != nil {
		return err
	}

	link := strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/api/v1/users/reset-password/" + secret
	return s.dispatchOrRollback(ctx, account, domain.PurposePasswordReset, ports.EmailMessage{
		To:      account.Email,
		ToName:  account.FullName,
		Subject: "Reset your password",
		TextBody: "Hello " + account.FullName + ",\n\n" +
			"Follow the link below to choose a new password. The link expires in " +
			formatMinutes(s.cfg.ResetTokenTTL) + ".\n\n" + link + "\n",
	})
}

// ResetPassword consumes a reset secret and installs the new password in the
// same transaction. Password and confirmation must match before any lookup.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if strings.TrimSpace(req.Token) == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("%w: password and confirmation do not match", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.accounts.ConsumePasswordResetToken(ctx, hashToken(req.Token), passwordHash, s.nowFn()); err != nil {
		return err
	}
	return nil
}

// ChangePassword rotates the password for an authenticated account after
// re-checking the current one.
func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, req ChangePasswordRequest) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(account.PasswordHash, req.OldPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdatePassword(ctx, accountID, passwordHash, s.nowFn())
}
