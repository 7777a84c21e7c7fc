package store

import (
	"context"

	"github.com/fanyer/presto-sub061/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SyncStateRepository persists sync cursors and user preferences.
type SyncStateRepository interface {
	// LoadState returns the stored cursors. A fresh database yields
	// models.NewSyncState().
	LoadState(ctx context.Context) (models.SyncState, error)

	// SaveState stores the global cursor and the cursors of the supports
	// types marked persistent. Cursors of other types keep their stored
	// value.
	SaveState(ctx context.Context, state models.SyncState) error

	// LoadPreferences returns ErrPreferencesNotFound when nothing was saved.
	LoadPreferences(ctx context.Context) (models.SyncPreferences, error)
	SavePreferences(ctx context.Context, prefs models.SyncPreferences) error
}
