package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fanyer/presto-sub061/models"
)

// ErrInvalidAuthorizationHeader is returned for a header that is not
// "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// ParseBearerToken extracts the token of a "Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// TokenExpiry reads the "exp" claim without verifying the signature. The
// client never holds the signing key; the server remains the judge of
// validity. A token without "exp" yields the zero time.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing token: %w", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// NewToken wraps a compact token string. Opaque (non-JWT) tokens are
// accepted with an unknown expiry.
func NewToken(signed string) models.Token {
	token := models.Token{SignedString: strings.TrimSpace(signed)}
	if exp, err := TokenExpiry(token.SignedString); err == nil {
		token.ExpiresAt = exp
	}
	return token
}
