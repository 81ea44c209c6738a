package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
)

// Register creates an unverified account. It never issues tokens; the caller
// must complete email verification before the first login.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AccountView, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AccountView{}, err
	}
	username, err := normalizeUsername(req.Username)
	if err != nil {
		return AccountView{}, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return AccountView{}, fmt.Errorf("%w: full name is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return AccountView{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AccountView{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, ports.CreateAccountParams{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     strings.TrimSpace(req.AvatarURL),
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
		PasswordHash:  passwordHash,
		Role:          s.cfg.DefaultRole,
		RegisteredAt:  s.nowFn(),
	})
	if err != nil {
		return AccountView{}, err
	}
	return toAccountView(account), nil
}

// RequestEmailVerification stores a fresh verification secret on the account
// and emails the activation link. A send failure clears the stored secret.
func (s *Service) RequestEmailVerification(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	account, err := s.accounts.GetByEmail(ctx, normalized)
	if err != nil {
		return err
	}
	if account.EmailVerified {
		return fmt.Errorf("%w: email already verified", domain.ErrAlreadyVerified)
	}

	secret, err := randomHex(32)
	if err != nil {
		return err
	}
	now := s.nowFn()
	rec := &domain.TokenRecord{
		Hash:      hashToken(secret),
		ExpiresAt: now.Add(s.cfg.VerificationTokenTTL),
	}
	if err := s.accounts.SetPendingToken(ctx, account.AccountID, domain.PurposeEmailVerification, rec, now); err != nil {
		return err
	}

	link := strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/api/v1/users/email-verification/" + secret
	return s.dispatchOrRollback(ctx, account, domain.PurposeEmailVerification, ports.EmailMessage{
		To:      account.Email,
		ToName:  account.FullName,
		Subject: "Verify your email address",
		TextBody: "Hello " + account.FullName + ",\n\n" +
			"Follow the link below to verify your email address. The link expires in " +
			formatMinutes(s.cfg.VerificationTokenTTL) + ".\n\n" + link + "\n",
	})
}

// VerifyEmail consumes a verification secret and marks the account verified.
// Wrong and expired secrets produce the same error.
func (s *Service) VerifyEmail(ctx context.Context, token string) (AccountView, error) {
	if strings.TrimSpace(token) == "" {
		return AccountView{}, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	account, err := s.accounts.ConsumeVerificationToken(ctx, hashToken(token), s.nowFn())
	if err != nil {
		return AccountView{}, err
	}
	return toAccountView(account), nil
}
