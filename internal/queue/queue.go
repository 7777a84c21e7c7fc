// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package queue implements the outgoing-changes queue of the sync engine.
//
// A [Queue] holds four collections:
//   - ACTIVE: local changes waiting to be sent, kept in dependency order;
//   - OUTGOING: the batch currently being sent to the server;
//   - DIRTY: local records collected for a full reconciliation;
//   - RECEIVED: records downloaded from the server and not yet consumed.
//
// Items reach ACTIVE through [Queue.Add]. In ordered mode the queue merges an
// item with a queued record of the same identity and moves it so that no
// item precedes a queued record it references through its "previous" or
// "parent" field. When a [Persister] is configured, ACTIVE and OUTGOING are
// written to disk after changes, coalesced by a timer.
//
// All methods are safe for concurrent use.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/models"
)

// DefaultWriteDelay is the write-coalescing delay used when none is set.
const DefaultWriteDelay = 5 * time.Second

// Mode selects how Add admits an item.
type Mode int

const (
	// ModeOrdered merges the item with a queued duplicate and restores
	// dependency order.
	ModeOrdered Mode = iota
	// ModeUnordered appends the item; the caller guarantees the order.
	ModeUnordered
	// ModeDirty routes the item into the full-reconciliation collection.
	ModeDirty
)

// Queue is the ordered outgoing queue. Use New to create one.
type Queue struct {
	mu sync.Mutex

	active   *dataitem.Collection
	outgoing *dataitem.Collection
	dirty    *dataitem.Collection
	received *dataitem.Collection

	persister  Persister
	writeDelay time.Duration
	timer      *time.Timer
	// writeMu serializes snapshot and save so an older snapshot never
	// lands after a newer one. Acquired before mu.
	writeMu sync.Mutex

	onAdded func()

	logger *logger.Logger
}

// Option configures a Queue.
type Option func(*Queue)

// WithPersister enables disk persistence with the given write delay. A
// non-positive delay selects DefaultWriteDelay.
func WithPersister(p Persister, delay time.Duration) Option {
	return func(q *Queue) {
		if delay <= 0 {
			delay = DefaultWriteDelay
		}
		q.persister = p
		q.writeDelay = delay
	}
}

// WithLogger sets the logger used for ordering and persistence messages.
func WithLogger(l *logger.Logger) Option {
	return func(q *Queue) {
		q.logger = l
	}
}

// WithOnAdded registers a callback invoked after an item was admitted to
// ACTIVE. The callback runs without the queue lock held.
func WithOnAdded(fn func()) Option {
	return func(q *Queue) {
		q.onAdded = fn
	}
}

// New returns an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		active:   dataitem.NewCollection(),
		outgoing: dataitem.NewCollection(),
		dirty:    dataitem.NewHashedCollection(),
		received: dataitem.NewCollection(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add admits item according to mode. For ModeOrdered it reports whether the
// item was merged into an already queued record.
func (q *Queue) Add(item *dataitem.Item, mode Mode) (bool, error) {
	if item == nil {
		return false, dataitem.ErrNilItem
	}

	var (
		merged bool
		err    error
	)

	q.mu.Lock()
	switch mode {
	case ModeDirty:
		err = q.addDirty(item)
	case ModeUnordered:
		err = q.active.AddItem(item)
	default:
		merged, err = q.addOrdered(item)
	}
	if err == nil && mode != ModeDirty {
		q.scheduleWriteLocked()
	}
	q.mu.Unlock()

	if err == nil && mode != ModeDirty && q.onAdded != nil {
		q.onAdded()
	}
	return merged, err
}

// AddOrdered is Add with ModeOrdered.
func (q *Queue) AddOrdered(item *dataitem.Item) (bool, error) {
	return q.Add(item, ModeOrdered)
}

// Update runs fn on the ACTIVE item of the record identified by t and id
// and reports whether such an item was queued. The item is reordered
// afterwards since fn may change its previous or parent reference.
func (q *Queue) Update(t models.DataItemType, id string, fn func(*dataitem.Item)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := q.active.FindReference(t, id)
	if item == nil {
		return false
	}
	fn(item)
	q.placeAfterAnchor(item)
	q.placeBeforeDependents(item)
	q.scheduleWriteLocked()
	return true
}

// Len returns the number of ACTIVE items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active.Len()
}

// HasQueuedItems reports whether ACTIVE or OUTGOING hold items.
func (q *Queue) HasQueuedItems() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.active.IsEmpty() || !q.outgoing.IsEmpty()
}

// HasActiveItems reports whether ACTIVE holds items.
func (q *Queue) HasActiveItems() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.active.IsEmpty()
}

// Active returns copies of the ACTIVE items in order.
func (q *Queue) Active() []*dataitem.Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return copyItems(q.active)
}

// RemoveQueuedItems drops the ACTIVE items of a supports type and returns
// how many were removed.
func (q *Queue) RemoveQueuedItems(supports models.Supports) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	removed := q.active.RemoveWhere(func(item *dataitem.Item) bool {
		return models.SupportsFromType(item.Type) == supports
	})
	if removed > 0 {
		q.scheduleWriteLocked()
	}
	return removed
}

// ── outgoing ────────────────────────────────────────────────────────────────

// PopulateOutgoing moves ACTIVE items, front first, into OUTGOING until it
// holds max items, and returns the size of OUTGOING.
func (q *Queue) PopulateOutgoing(max int) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.outgoing.Len() < max {
		item := q.active.First()
		if item == nil {
			break
		}
		_ = q.outgoing.AddItem(item)
	}
	q.scheduleWriteLocked()
	return q.outgoing.Len()
}

// Outgoing returns copies of the OUTGOING items in order.
func (q *Queue) Outgoing() []*dataitem.Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return copyItems(q.outgoing)
}

// ClearOutgoing drops OUTGOING after the server accepted it.
func (q *Queue) ClearOutgoing() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.outgoing.Clear()
	q.scheduleWriteLocked()
}

// RestoreOutgoing moves OUTGOING back to the front of ACTIVE after a failed
// exchange. A record changed again while it was being sent is merged into
// the restored item so ACTIVE keeps one item per record.
func (q *Queue) RestoreOutgoing() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.outgoing.IsEmpty() {
		return
	}
	for item := range q.outgoing.All() {
		newer := q.active.Find(item)
		if newer == nil {
			continue
		}
		q.active.RemoveItem(newer)
		status, err := item.Merge(newer)
		if err != nil {
			q.logger.Warn().Err(err).Str("item", item.String()).Msg("restore outgoing: merge failed")
			continue
		}
		if status == dataitem.MergeDeleted {
			q.logger.Debug().Str("item", item.String()).Msg("restore outgoing: add and delete cancelled out")
		}
	}
	q.active.PrependCollection(q.outgoing)
	q.scheduleWriteLocked()
}

// ── dirty ───────────────────────────────────────────────────────────────────

// HasDirtyItems reports whether a full reconciliation is pending.
func (q *Queue) HasDirtyItems() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.dirty.IsEmpty()
}

// TakeDirty hands the DIRTY collection to the caller and starts a new one.
func (q *Queue) TakeDirty() *dataitem.Collection {
	q.mu.Lock()
	defer q.mu.Unlock()

	taken := q.dirty
	q.dirty = dataitem.NewHashedCollection()
	return taken
}

func (q *Queue) addDirty(item *dataitem.Item) error {
	if !item.HasPrimaryKey() {
		return dataitem.ErrNoPrimaryKey
	}
	if existing := q.dirty.Find(item); existing != nil && existing != item {
		_, err := existing.Merge(item)
		return err
	}
	return q.dirty.AddItem(item)
}

// ── received ────────────────────────────────────────────────────────────────

// AddReceived appends downloaded items to RECEIVED.
func (q *Queue) AddReceived(items ...*dataitem.Item) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, item := range items {
		_ = q.received.AddItem(item)
	}
}

// HasReceivedItems reports whether RECEIVED holds items.
func (q *Queue) HasReceivedItems() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.received.IsEmpty()
}

// ReceivedOfTypes returns a collection with copies of the RECEIVED items of
// the given kinds, in arrival order. RECEIVED is not modified.
func (q *Queue) ReceivedOfTypes(types ...models.DataItemType) *dataitem.Collection {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := dataitem.NewCollection()
	for item := range q.received.All() {
		if hasType(types, item.Type) {
			_ = out.AddItem(item.Copy())
		}
	}
	return out
}

// ConsumeReceived drops the RECEIVED items of the given kinds.
func (q *Queue) ConsumeReceived(types ...models.DataItemType) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.received.RemoveWhere(func(item *dataitem.Item) bool {
		return hasType(types, item.Type)
	})
}

// ClearReceived drops every RECEIVED item.
func (q *Queue) ClearReceived() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.received.Clear()
}

func hasType(types []models.DataItemType, t models.DataItemType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func copyItems(c *dataitem.Collection) []*dataitem.Item {
	out := make([]*dataitem.Item, 0, c.Len())
	for item := range c.All() {
		out = append(out, item.Copy())
	}
	return out
}

// ── persistence ─────────────────────────────────────────────────────────────

// Load reads the persisted queue and appends it without reordering:
// ACTIVE items after the current ACTIVE items, OUTGOING items to OUTGOING.
// It is a no-op without a persister.
func (q *Queue) Load(ctx context.Context) error {
	if q.persister == nil {
		return nil
	}
	active, outgoing, err := q.persister.LoadQueue(ctx)
	if err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range outgoing {
		_ = q.outgoing.AddItem(item)
	}
	for _, item := range active {
		_ = q.active.AddItem(item)
	}
	q.logger.Info().
		Int("active", len(active)).
		Int("outgoing", len(outgoing)).
		Msg("sync queue loaded")
	return nil
}

// Flush writes the queue immediately, cancelling a pending delayed write.
func (q *Queue) Flush(ctx context.Context) error {
	if q.persister == nil {
		return nil
	}
	q.writeMu.Lock()
	defer q.writeMu.Unlock()

	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	active, outgoing := copyItems(q.active), copyItems(q.outgoing)
	q.mu.Unlock()

	return q.persister.SaveQueue(ctx, active, outgoing)
}

// Close flushes pending changes.
func (q *Queue) Close(ctx context.Context) error {
	return q.Flush(ctx)
}

// scheduleWriteLocked arms the write timer unless one is already pending.
func (q *Queue) scheduleWriteLocked() {
	if q.persister == nil || q.timer != nil {
		return
	}
	q.timer = time.AfterFunc(q.writeDelay, q.delayedWrite)
}

func (q *Queue) delayedWrite() {
	q.writeMu.Lock()
	defer q.writeMu.Unlock()

	q.mu.Lock()
	q.timer = nil
	active, outgoing := copyItems(q.active), copyItems(q.outgoing)
	q.mu.Unlock()

	if err := q.persister.SaveQueue(context.Background(), active, outgoing); err != nil {
		q.logger.Err(err).Msg("failed to write sync queue")
	}
}
