package queue

import (
	"context"

	"github.com/fanyer/presto-sub061/internal/dataitem"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/queue_persister_mock.go -package=mock

// Persister stores the ACTIVE and OUTGOING collections between sessions.
// Only one process may use a given Persister location at a time.
type Persister interface {
	// SaveQueue replaces the stored queue with the given items. The slices
	// hold copies owned by the callee.
	SaveQueue(ctx context.Context, active, outgoing []*dataitem.Item) error

	// LoadQueue returns the stored items in their stored order. A missing
	// store yields empty slices and no error.
	LoadQueue(ctx context.Context) (active, outgoing []*dataitem.Item, err error)
}
