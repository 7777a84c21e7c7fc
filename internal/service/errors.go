package service

import (
	"errors"
	"fmt"

	"github.com/fanyer/presto-sub061/models"
)

var (
	ErrNoCredentials  = errors.New("no sync credentials configured")
	ErrSyncDisabled   = errors.New("sync disabled")
	ErrSyncInProgress = errors.New("sync in progress")
	ErrBackoff        = errors.New("server asked to retry later")

	ErrDirtyAndOrdered = errors.New("an item cannot be committed both dirty and ordered")
	ErrItemCommitted   = errors.New("item already committed")
	ErrUnknownKey      = errors.New("unknown item key")
)

// CycleError is the failure of one sync cycle. Code is the value reported
// to UI listeners and Message the server-supplied text, if any.
type CycleError struct {
	Code    models.SyncError
	Message string
	Err     error
}

func newCycleError(code models.SyncError, message string, err error) *CycleError {
	return &CycleError{Code: code, Message: message, Err: err}
}

func (e *CycleError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("sync cycle: %s: %s: %v", e.Code, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("sync cycle: %s: %s", e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("sync cycle: %s: %v", e.Code, e.Err)
	default:
		return "sync cycle: " + e.Code.Error()
	}
}

// Unwrap exposes both the taxonomy code and the cause to errors.Is.
func (e *CycleError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code}
	}
	return []error{e.Code, e.Err}
}

// Event returns the value delivered to UI listeners.
func (e *CycleError) Event() models.ErrorEvent {
	return models.ErrorEvent{Code: e.Code, Message: e.Message}
}
