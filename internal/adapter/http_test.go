// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/utils"
	"github.com/fanyer/presto-sub061/models"
)

const testRequest = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<link version="1.1" syncstate="0" dirty="0"><data></data></link>`

// newTestAdapter creates an httpServerAdapter pointed at the test server for
// both the sync and the auth endpoints.
func newTestAdapter(t *testing.T, serverURL string, mutate ...func(*config.ClientAdapter)) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{
		ServerAddress:  serverURL + "/sync",
		AuthAddress:    serverURL + "/auth",
		LoadingTimeout: 5 * time.Second,
		AuthTimeout:    5 * time.Second,
	}
	for _, m := range mutate {
		m(&adapterCfg)
	}
	appCfg := config.ClientApp{HashKey: "testhashkey"}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── Constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_AddressValidation(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{AuthAddress: "http://auth"}, config.ClientApp{}, logger.Nop())
	assert.Error(t, err)

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		ServerAddress: "sync.example.com/api/sync",
		AuthAddress:   "https://auth.example.com/token",
	}, config.ClientApp{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://sync.example.com/api/sync", a.(*httpServerAdapter).syncURL)
}

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost")
	a.SetToken("  tok  ")
	assert.Equal(t, "tok", a.Token())
	a.SetToken("")
	assert.Empty(t, a.Token())
}

// ── RequestToken ────────────────────────────────────────────────────────────

func TestRequestToken_FromAuthorizationHeader(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"alice","password":"pw"}`, string(body))

		w.Header().Set("Authorization", "Bearer "+signed)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.RequestToken(context.Background(), models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, signed, token.SignedString)
	assert.True(t, token.ExpiresAt.Equal(exp))
	assert.Empty(t, a.Token(), "RequestToken must not store the token")
}

func TestRequestToken_FromJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"opaque"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	token, err := a.RequestToken(context.Background(), models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "opaque", token.String())
	assert.True(t, token.ExpiresAt.IsZero())
}

func TestRequestToken_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.RequestToken(context.Background(), models.Credentials{})
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestRequestToken_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.RequestToken(context.Background(), models.Credentials{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "bad credentials")
}

// ── Exchange ────────────────────────────────────────────────────────────────

func TestExchange_PlainRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync", r.URL.Path)
		assert.Equal(t, syncContentType, r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Encoding"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, testRequest, string(body))
		assert.Equal(t, utils.HashString(testRequest, "testhashkey"), r.Header.Get(hashHeader))

		_, _ = w.Write([]byte(`<link syncstate="5"/>`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	resp, err := a.Exchange(context.Background(), []byte(testRequest))
	require.NoError(t, err)
	assert.Equal(t, `<link syncstate="5"/>`, string(resp))
}

func TestExchange_GzipBothWays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		zr, err := gzip.NewReader(r.Body)
		if !assert.NoError(t, err) {
			return
		}
		body, _ := io.ReadAll(zr)
		assert.Equal(t, testRequest, string(body))
		assert.Equal(t, utils.HashString(testRequest, "testhashkey"), r.Header.Get(hashHeader))

		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte(`<link syncstate="6"/>`))
		_ = zw.Close()
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, func(c *config.ClientAdapter) { c.Compress = true })

	resp, err := a.Exchange(context.Background(), []byte(testRequest))
	require.NoError(t, err)
	assert.Equal(t, `<link syncstate="6"/>`, string(resp))
}

func TestExchange_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Exchange(context.Background(), []byte(testRequest))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExchange_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, srv.URL, func(c *config.ClientAdapter) { c.LoadingTimeout = 50 * time.Millisecond })

	_, err := a.Exchange(context.Background(), []byte(testRequest))
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExchange_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Exchange(ctx, []byte(testRequest))
	assert.True(t, errors.Is(err, context.Canceled))
}

// ── compression helpers ─────────────────────────────────────────────────────

func TestReadBody(t *testing.T) {
	compressed, err := gzipBytes([]byte("hello"))
	require.NoError(t, err)

	got, err := readBody(bytes.NewReader(compressed), "GZIP")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	got, err = readBody(bytes.NewReader([]byte("plain")), "")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(got))

	_, err = readBody(bytes.NewReader([]byte("plain")), "gzip")
	assert.Error(t, err)
}
