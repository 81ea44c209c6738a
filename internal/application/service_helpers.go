package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/consolebusters/account-service/internal/domain"
	"github.com/consolebusters/account-service/internal/ports"
)

// issueTokens mints a fresh access/refresh pair and persists the refresh token
// as the account's single active session value. Rotation happens here: the
// previous stored token stops matching the moment the new one is written.
func (s *Service) issueTokens(ctx context.Context, account domain.Account) (TokenPairResponse, error) {
	now := s.nowFn()
	access, err := s.tokens.SignAccess(ports.AccessClaims{
		AccountID: account.AccountID,
		Email:     account.Email,
		Username:  account.Username,
		FullName:  account.FullName,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	})
	if err != nil {
		return TokenPairResponse{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.SignRefresh(ports.RefreshClaims{
		AccountID: account.AccountID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	})
	if err != nil {
		return TokenPairResponse{}, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.accounts.SetRefreshToken(ctx, account.AccountID, refresh, now); err != nil {
		return TokenPairResponse{}, fmt.Errorf("persist refresh token: %w", err)
	}

	view := toAccountView(account)
	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Account:      &view,
	}, nil
}

// dispatchOrRollback sends the email carrying a just-stored secret. If the
// send fails, the pending record is cleared so a stale fingerprint cannot
// linger on the account.
func (s *Service) dispatchOrRollback(ctx context.Context, account domain.Account, purpose domain.TokenPurpose, msg ports.EmailMessage) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		if rbErr := s.accounts.SetPendingToken(ctx, account.AccountID, purpose, nil, s.nowFn()); rbErr != nil {
			slog.Default().ErrorContext(ctx, "pending secret rollback failed",
				"service", serviceName,
				"module", "application",
				"layer", "application",
				"operation", "rollback_pending_secret",
				"outcome", "failure",
				"purpose", string(purpose),
				"account_id", account.AccountID,
				"error", rbErr,
			)
		}
		return fmt.Errorf("%w: %v", domain.ErrMailerUnavailable, err)
	}
	return nil
}

// normalizeEmail canonicalizes and validates email format before persistence/comparison.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	return trimmed, nil
}

// normalizeUsername lowercases and validates a username.
func normalizeUsername(username string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(username))
	if trimmed == "" {
		return "", fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if len(trimmed) < 3 || len(trimmed) > 32 {
		return "", fmt.Errorf("%w: username must be 3-32 characters", domain.ErrInvalidInput)
	}
	for _, r := range trimmed {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' && r != '.' && r != '-' {
			return "", fmt.Errorf("%w: username may contain only letters, digits, '_', '.', '-'", domain.ErrInvalidInput)
		}
	}
	return trimmed, nil
}

// hashToken stores one-way token fingerprints instead of raw secrets.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a cryptographically random hex token.
func randomHex(bytesLen int) (string, error) {
	raw := make([]byte, bytesLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// formatMinutes renders a duration for email copy, e.g. "15 minutes".
func formatMinutes(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// randomDigits returns a zero-padded random numeric code drawn uniformly
// from [0, 10^size).
func randomDigits(size int) (string, error) {
	if size <= 0 {
		size = 6
	}
	bound := big.NewInt(1)
	for i := 0; i < size; i++ {
		bound.Mul(bound, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return fmt.Sprintf("%0*d", size, n), nil
}
