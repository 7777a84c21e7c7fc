package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Signer computes HMAC-SHA256 signatures of request bodies. Hashers are
// pooled so concurrent cycles do not allocate one per request.
type Signer struct {
	pool sync.Pool
}

// NewSigner returns a Signer keyed with key, or nil when key is empty. A nil
// Signer signs nothing.
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}
	s := &Signer{}
	s.pool.New = func() any {
		return hmac.New(sha256.New, []byte(key))
	}
	return s
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (s *Signer) Sum(data []byte) []byte {
	if s == nil {
		return nil
	}
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return sum
}

// Sign returns the hex-encoded digest of data, or "" for a nil Signer.
func (s *Signer) Sign(data []byte) string {
	if s == nil {
		return ""
	}
	return hex.EncodeToString(s.Sum(data))
}

// HashString computes a one-off hex-encoded HMAC-SHA256 of data.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
