package http

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `json:"email"`
	}

	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"email":"a@b.io"}`},
		{name: "empty body", body: "", wantErr: true},
		{name: "unknown field", body: `{"email":"a@b.io","extra":1}`, wantErr: true},
		{name: "trailing value", body: `{"email":"a@b.io"}{}`, wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			var dst payload
			err := decodeBody(w, r, &dst)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if dst.Email != "a@b.io" {
				t.Fatalf("email: got %q", dst.Email)
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want int
	}{
		{"", 20},
		{"  ", 20},
		{"abc", 20},
		{"0", 20},
		{"-3", 20},
		{"7", 7},
	}
	for _, tc := range cases {
		if got := parsePositiveInt(tc.raw, 20); got != tc.want {
			t.Fatalf("parsePositiveInt(%q): got %d want %d", tc.raw, got, tc.want)
		}
	}
}
