// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the transport boundary of the sync client.
//
// [ServerAdapter] carries encoded sync documents to the sync server and
// obtains bearer tokens from the auth endpoint. The package ships one
// HTTP implementation built on resty ([NewHTTPServerAdapter]).
//
// HTTP statuses are mapped to the sentinels in errors.go by mapHTTPError and
// network failures are wrapped in [ErrTransport], so callers classify errors
// with [errors.Is] without looking at HTTP details.
package adapter

import (
	"context"

	"github.com/fanyer/presto-sub061/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the sync and auth servers.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every Exchange. An empty
	// token drops the current one.
	SetToken(token string)

	// Token returns the stored bearer token or an empty string.
	Token() string

	// RequestToken asks the auth endpoint for a bearer token. It does not
	// store the token.
	RequestToken(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Exchange posts one encoded sync document and returns the response
	// body. Compression in either direction is handled here.
	Exchange(ctx context.Context, body []byte) ([]byte, error)
}
