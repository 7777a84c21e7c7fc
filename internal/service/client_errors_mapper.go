// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net"

	"github.com/fanyer/presto-sub061/internal/adapter"
	"github.com/fanyer/presto-sub061/models"
)

// mapAdapterError translates a transport error of a sync exchange into the
// sync error taxonomy.
func mapAdapterError(err error) models.SyncError {
	if err == nil {
		return models.SyncOK
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return models.SyncErrorCommAborted
	case errors.Is(err, context.DeadlineExceeded):
		return models.SyncErrorCommTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return models.SyncErrorCommTimeout

	// a sync request is only rejected with 401 once the token went stale
	case errors.Is(err, adapter.ErrUnauthorized):
		return models.SyncErrorOAuthExpired
	case errors.Is(err, adapter.ErrForbidden):
		return models.SyncErrorAuthFailure
	case errors.Is(err, adapter.ErrTooManyRequests):
		return models.SyncErrorUserUnavailable
	case errors.Is(err, adapter.ErrBadRequest):
		return models.SyncErrorInvalidRequest
	case errors.Is(err, adapter.ErrInternalServerError):
		return models.SyncErrorServer
	case errors.Is(err, adapter.ErrBadGateway),
		errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrTransport):
		return models.SyncErrorCommFail
	}

	return models.SyncErrorGeneric
}

// mapAuthError translates a failed token request. Rejected credentials are
// an authentication failure; everything else maps like an exchange error.
func mapAuthError(err error) models.SyncError {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrEmptyToken):
		return models.SyncErrorAuthFailure
	}
	return mapAdapterError(err)
}
