package security

import (
	"strings"
	"testing"
	"time"

	"github.com/consolebusters/account-service/internal/ports"
	"github.com/google/uuid"
)

func newTestCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("access-secret-for-tests", "refresh-secret-for-tests")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC().Truncate(time.Second)
	in := ports.AccessClaims{
		AccountID: uuid.New(),
		Email:     "user@example.com",
		Username:  "user",
		FullName:  "Example User",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}

	raw, err := codec.SignAccess(in)
	if err != nil {
		t.Fatalf("sign access: %v", err)
	}
	out, err := codec.ParseAccess(raw)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if out.AccountID != in.AccountID || out.Email != in.Email || out.Username != in.Username || out.FullName != in.FullName {
		t.Fatalf("claims mismatch: got %+v want %+v", out, in)
	}
}

func TestRefreshTokenCarriesOnlyIdentity(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC().Truncate(time.Second)
	accountID := uuid.New()

	raw, err := codec.SignRefresh(ports.RefreshClaims{
		AccountID: accountID,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}
	if strings.Contains(raw, "email") {
		t.Fatalf("refresh token should not embed profile claims")
	}
	out, err := codec.ParseRefresh(raw)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if out.AccountID != accountID {
		t.Fatalf("account id mismatch: got %s want %s", out.AccountID, accountID)
	}
}

func TestTokensDoNotCrossValidate(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC()

	access, err := codec.SignAccess(ports.AccessClaims{
		AccountID: uuid.New(),
		Email:     "user@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign access: %v", err)
	}
	refresh, err := codec.SignRefresh(ports.RefreshClaims{
		AccountID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}

	if _, err := codec.ParseRefresh(access); err == nil {
		t.Fatalf("access token must not verify against the refresh secret")
	}
	if _, err := codec.ParseAccess(refresh); err == nil {
		t.Fatalf("refresh token must not verify against the access secret")
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	now := time.Now().UTC()

	raw, err := codec.SignAccess(ports.AccessClaims{
		AccountID: uuid.New(),
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign access: %v", err)
	}
	if _, err := codec.ParseAccess(raw); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestNewTokenCodecRejectsSharedSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenCodec("same", "same"); err == nil {
		t.Fatalf("expected shared secret to be rejected")
	}
	if _, err := NewTokenCodec("", "refresh"); err == nil {
		t.Fatalf("expected empty access secret to be rejected")
	}
}
