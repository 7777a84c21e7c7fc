package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer tok", "tok", false},
		{"extra spaces", "  Bearer   tok  ", "tok", false},
		{"missing token", "Bearer", "", true},
		{"wrong scheme", "Basic dXNlcjpwdw==", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationHeader) {
					t.Fatalf("expected ErrInvalidAuthorizationHeader, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenExpiry_ReadsExpWithoutKey(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("got %v, want %v", got, exp)
	}
}

func TestTokenExpiry_ExpiredTokenStillParses(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("got %v, want %v", got, exp)
	}
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Subject: "alice"})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero time, got %v", got)
	}
}

func TestTokenExpiry_Malformed(t *testing.T) {
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestNewToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	jwtToken := NewToken(" " + signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}) + " ")
	if !jwtToken.ExpiresAt.Equal(exp) {
		t.Errorf("expiry not read: %v", jwtToken.ExpiresAt)
	}
	if !jwtToken.Valid(time.Now()) {
		t.Error("fresh token must be valid")
	}

	opaque := NewToken("opaque-token")
	if !opaque.ExpiresAt.IsZero() {
		t.Error("opaque token must have unknown expiry")
	}
	if opaque.String() != "opaque-token" {
		t.Errorf("got %q", opaque.String())
	}
}
