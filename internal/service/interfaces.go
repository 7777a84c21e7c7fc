package service

import (
	"context"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/listeners_mock.go -package=mock

// DataListener is implemented by each data domain (bookmarks, notes, speed
// dials...). A listener is registered for one or more record kinds and is
// notified in registration order, so a kind referenced by others must be
// registered first.
type DataListener interface {
	// Initialize is called once before the first sync of the kind.
	Initialize(ctx context.Context, t models.DataItemType) error

	// DataAvailable delivers the received items of kind t. The collection
	// holds copies. Returning DataErrorAsync keeps the items for redelivery;
	// DataErrorInconsistency asks for a dirty flush of the kind. A non-nil
	// error fails the delivery and keeps the items.
	DataAvailable(ctx context.Context, t models.DataItemType, items *dataitem.Collection) (models.DataError, error)

	// Flush asks the listener to commit all its local data of kind t. For a
	// dirty flush the items are committed with dirty=true.
	Flush(ctx context.Context, t models.DataItemType, firstSync, isDirty bool) error

	// SupportsChanged reports that the user toggled a supports type.
	SupportsChanged(s models.Supports, enabled bool)
}

// UIListener receives the user-facing outcome of sync cycles.
type UIListener interface {
	OnSyncStarted(itemsSending bool)
	OnSyncError(event models.ErrorEvent)
	OnSyncFinished(state models.SyncState)
}
