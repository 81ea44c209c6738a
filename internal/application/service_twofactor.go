package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

// RequestTwoFactorToggle starts an OTP-confirmed flip of the two-factor flag.
// The current password is re-checked so a stolen access token alone cannot
// change the setting.
func (s *Service) RequestTwoFactorToggle(ctx context.Context, accountID uuid.UUID, password string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return domain.ErrInvalidCredentials
	}

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

	action := "enable"
	if account.TwoFactorEnabled {
		action = "disable"
	}
	return s.dispatchOrRollback(ctx, account, domain.PurposeOTP, ports.EmailMessage{
		To:      account.Email,
		ToName:  account.FullName,
		Subject: "Confirm your two-factor setting",
		TextBody: "Hello " + account.FullName + ",\n\n" +
			"Your code to " + action + " two-factor login is " + code + ". It expires in " +
			formatMinutes(s.cfg.OTPTokenTTL) + ".\n",
	})
}

// ConfirmTwoFactorToggle consumes the pending OTP and flips the flag.
func (s *Service) ConfirmTwoFactorToggle(ctx context.Context, accountID uuid.UUID, otp string) (AccountView, error) {
	if strings.TrimSpace(otp) == "" {
		return AccountView{}, fmt.Errorf("%w: otp is required", domain.ErrInvalidInput)
	}
	account, err := s.accounts.ConsumeOTPToken(ctx, hashToken(otp), s.nowFn())
	if err != nil {
		return AccountView{}, err
	}
	if account.AccountID != accountID {
		return AccountView{}, domain.ErrUnauthorized
	}

	enabled := !account.TwoFactorEnabled
	if err := s.accounts.SetTwoFactor(ctx, account.AccountID, enabled, s.nowFn()); err != nil {
		return AccountView{}, err
	}
	account.TwoFactorEnabled = enabled
	return toAccountView(account), nil
}
