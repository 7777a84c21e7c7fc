package models

import (
	"strings"
	"time"
)

// Credentials identify the account the client synchronizes.
type Credentials struct {
	// Username is the account login.
	Username string `json:"username"`

	// Password is the account secret. It is never logged.
	Password string `json:"password"`
}

// Empty reports whether no usable credentials were configured.
func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.Username) == "" || c.Password == ""
}

// Token is the bearer token handed out by the auth collaborator.
//
// SignedString is the compact form sent in the Authorization header.
// ExpiresAt is the "exp" claim of the token when it could be read; a zero
// value means the expiry is unknown and the token is used until the server
// rejects it.
type Token struct {
	SignedString string    `json:"-"`
	ExpiresAt    time.Time `json:"-"`
}

// String returns the compact token string.
func (t Token) String() string {
	return t.SignedString
}

// Valid reports whether the token is present and not expired at now.
func (t Token) Valid(now time.Time) bool {
	if t.SignedString == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || now.Before(t.ExpiresAt)
}
