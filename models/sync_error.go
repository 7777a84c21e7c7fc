// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncError is the closed taxonomy of errors surfaced to UI listeners.
// A SyncError is itself an error, so a wrapped code can be matched with
// errors.Is.
type SyncError int

const (
	SyncOK SyncError = iota
	SyncErrorGeneric

	// transport
	SyncErrorCommAborted
	SyncErrorCommFail
	SyncErrorCommTimeout

	// protocol
	SyncErrorClientVersion
	SyncErrorProtocolVersion
	SyncErrorParser
	SyncErrorInvalidRequest

	// data
	SyncErrorInvalidBookmark
	SyncErrorInvalidContact
	SyncErrorInvalidFeed
	SyncErrorInvalidNote
	SyncErrorInvalidSearch
	SyncErrorInvalidSpeeddial
	SyncErrorInvalidStatus
	SyncErrorInvalidTypedHistory
	SyncErrorInvalidURLFilter

	// server
	SyncErrorServer

	// account
	SyncErrorAuthFailure
	SyncErrorAuthInvalidKey
	SyncErrorOAuthExpired
	SyncErrorUserBanned
	SyncErrorUserUnavailable

	// local resource
	SyncErrorMemory
	SyncErrorSyncDisabled
	SyncErrorSyncInProgress

	// pending state
	SyncErrorPendingEncryptionKey
)

var syncErrorNames = map[SyncError]string{
	SyncOK:                        "ok",
	SyncErrorGeneric:              "error",
	SyncErrorCommAborted:          "communication aborted",
	SyncErrorCommFail:             "communication failure",
	SyncErrorCommTimeout:          "communication timeout",
	SyncErrorClientVersion:        "unsupported client version",
	SyncErrorProtocolVersion:      "unsupported protocol version",
	SyncErrorParser:               "parse error",
	SyncErrorInvalidRequest:       "invalid request",
	SyncErrorInvalidBookmark:      "invalid bookmark",
	SyncErrorInvalidContact:       "invalid contact",
	SyncErrorInvalidFeed:          "invalid feed",
	SyncErrorInvalidNote:          "invalid note",
	SyncErrorInvalidSearch:        "invalid search",
	SyncErrorInvalidSpeeddial:     "invalid speed dial",
	SyncErrorInvalidStatus:        "invalid status",
	SyncErrorInvalidTypedHistory:  "invalid typed history",
	SyncErrorInvalidURLFilter:     "invalid url filter",
	SyncErrorServer:               "server error",
	SyncErrorAuthFailure:          "authentication failure",
	SyncErrorAuthInvalidKey:       "invalid encryption key",
	SyncErrorOAuthExpired:         "oauth token expired",
	SyncErrorUserBanned:           "user banned",
	SyncErrorUserUnavailable:      "user temporarily unavailable",
	SyncErrorMemory:               "out of memory",
	SyncErrorSyncDisabled:         "sync disabled",
	SyncErrorSyncInProgress:       "sync in progress",
	SyncErrorPendingEncryptionKey: "encryption key pending",
}

// Error implements the error interface.
func (e SyncError) Error() string {
	if name, ok := syncErrorNames[e]; ok {
		return name
	}
	return "unknown sync error"
}

// String returns the same text as Error.
func (e SyncError) String() string {
	return e.Error()
}

// IsTransport reports whether e is a communication failure that leaves the
// queue untouched and is retried on the next regular cycle.
func (e SyncError) IsTransport() bool {
	return e == SyncErrorCommAborted || e == SyncErrorCommFail || e == SyncErrorCommTimeout
}

// IsAccount reports whether e concerns the user's account.
func (e SyncError) IsAccount() bool {
	return e >= SyncErrorAuthFailure && e <= SyncErrorUserUnavailable
}

// ErrorEvent is what UI listeners receive for a failed cycle. Message holds
// the server-supplied text when there is one.
type ErrorEvent struct {
	Code    SyncError
	Message string
}

// DataError is the per-listener outcome of a DataAvailable delivery.
type DataError int

const (
	// DataErrorNone means the listener consumed the items.
	DataErrorNone DataError = iota
	// DataErrorInconsistency asks for a follow-up dirty flush of the type.
	DataErrorInconsistency
	// DataErrorAsync defers handling; the items are kept for redelivery.
	DataErrorAsync
)
