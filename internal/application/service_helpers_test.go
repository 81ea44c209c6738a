package application

import (
	"strings"
	"testing"
)

func TestRandomDigitsLengthAndCharset(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, err := randomDigits(6)
		if err != nil {
			t.Fatalf("random digits: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("length: got %q", code)
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("non-digit in code %q", code)
		}
	}

	code, err := randomDigits(4)
	if err != nil {
		t.Fatalf("random digits: %v", err)
	}
	if len(code) != 4 {
		t.Fatalf("length: got %q", code)
	}
}

func TestRandomHexLength(t *testing.T) {
	t.Parallel()

	token, err := randomHex(32)
	if err != nil {
		t.Fatalf("random hex: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("length: got %d want 64", len(token))
	}
	if strings.Trim(token, "0123456789abcdef") != "" {
		t.Fatalf("non-hex character in %q", token)
	}
}
