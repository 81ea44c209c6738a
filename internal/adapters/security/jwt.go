package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/consolebusters/account-service/internal/ports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenCodec implements HS256 signing/parsing for the two session token
// flavors. Access and refresh tokens use independent secrets, so a leaked
// refresh secret never validates access tokens and vice versa.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenCodec builds a codec from the configured secrets.
func NewTokenCodec(accessSecret, refreshSecret string) (*TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("access and refresh token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}, nil
}

type accessJWTClaims struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}

type refreshJWTClaims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

func (c *TokenCodec) SignAccess(claims ports.AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessJWTClaims{
		AccountID: claims.AccountID.String(),
		Email:     claims.Email,
		Username:  claims.Username,
		FullName:  claims.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(c.accessSecret)
}

func (c *TokenCodec) SignRefresh(claims ports.RefreshClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshJWTClaims{
		AccountID: claims.AccountID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(c.refreshSecret)
}

func (c *TokenCodec) ParseAccess(raw string) (ports.AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accessJWTClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return c.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return ports.AccessClaims{}, err
	}
	claims, ok := parsed.Claims.(*accessJWTClaims)
	if !ok || !parsed.Valid {
		return ports.AccessClaims{}, errors.New("invalid token claims")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return ports.AccessClaims{}, fmt.Errorf("parse account_id: %w", err)
	}

	return ports.AccessClaims{
		AccountID: accountID,
		Email:     claims.Email,
		Username:  claims.Username,
		FullName:  claims.FullName,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func (c *TokenCodec) ParseRefresh(raw string) (ports.RefreshClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &refreshJWTClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return c.refreshSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return ports.RefreshClaims{}, err
	}
	claims, ok := parsed.Claims.(*refreshJWTClaims)
	if !ok || !parsed.Valid {
		return ports.RefreshClaims{}, errors.New("invalid token claims")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return ports.RefreshClaims{}, fmt.Errorf("parse account_id: %w", err)
	}

	return ports.RefreshClaims{
		AccountID: accountID,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
