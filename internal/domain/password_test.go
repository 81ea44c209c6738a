package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/consolebusters/account-service/internal/domain"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		password  string
		wantError bool
	}{
		{name: "valid", password: "StrongPass123", wantError: false},
		{name: "too short", password: "Ab1", wantError: true},
		{name: "too long", password: strings.Repeat("Aa1", 50), wantError: true},
		{name: "letters only", password: "OnlyLettersHere", wantError: true},
		{name: "digits only", password: "1029384756", wantError: true},
		{name: "weak pattern password", password: "MyPassword9", wantError: true},
		{name: "weak pattern sequence", password: "abc123456def", wantError: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := domain.ValidatePassword(tc.password)
			if tc.wantError && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantError && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tc.wantError && !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("policy failures must wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}
