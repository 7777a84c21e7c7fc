package service

import (
	"context"
	"fmt"

	"github.com/fanyer/presto-sub061/internal/codec"
	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/queue"
	"github.com/fanyer/presto-sub061/internal/utils"
	"github.com/fanyer/presto-sub061/models"
)

// singletonID is the synthetic primary key of singleton records.
const singletonID = "0"

// ItemFactory hands out SyncItem handles bound to the queue.
type ItemFactory struct {
	queue *queue.Queue
	ids   *utils.UUIDGenerator
}

func NewItemFactory(q *queue.Queue, ids *utils.UUIDGenerator) *ItemFactory {
	return &ItemFactory{queue: q, ids: ids}
}

// NewItem starts a new record of kind t with status added. Kinds keyed by
// "id" get a generated key; singletons get id="0". Other kinds receive
// their key through SetData.
func (f *ItemFactory) NewItem(t models.DataItemType) *SyncItem {
	item := dataitem.New(t, models.StatusAdded)
	switch {
	case t.IsSingleton():
		_ = item.SetPrimaryKey("id", singletonID)
		item.SetAttribute("id", singletonID)
	case t.PrimaryKeyName() == "id":
		id := f.ids.Generate()
		_ = item.SetPrimaryKey("id", id)
		item.SetAttribute("id", id)
	}
	return &SyncItem{item: item, queue: f.queue}
}

// GetSyncItem returns a handle for an existing record, with status modified.
func (f *ItemFactory) GetSyncItem(t models.DataItemType, key, value string) *SyncItem {
	item := dataitem.New(t, models.StatusModified)
	_ = item.SetPrimaryKey(key, value)
	setField(item, key, value)
	return &SyncItem{item: item, queue: f.queue}
}

// SyncItem is a record being prepared by a data domain. It is queued by
// Commit and must not be touched afterwards.
type SyncItem struct {
	item      *dataitem.Item
	queue     *queue.Queue
	committed bool
}

// Type returns the record kind.
func (s *SyncItem) Type() models.DataItemType {
	return s.item.Type
}

// PrimaryKey returns the record's key name and value.
func (s *SyncItem) PrimaryKey() (string, string) {
	return s.item.PrimaryKey()
}

// SetStatus overrides the pending action.
func (s *SyncItem) SetStatus(status models.ItemStatus) {
	s.item.Status = status
}

// SetData stores a field. Setting the kind's primary key field on a handle
// without a key fixes the key.
func (s *SyncItem) SetData(key models.Key, value string) error {
	if s.committed {
		return ErrItemCommitted
	}
	name := key.Name()
	if name == "" {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	if name == s.item.Type.PrimaryKeyName() {
		if err := s.item.SetPrimaryKey(name, value); err != nil {
			return err
		}
	}
	setField(s.item, name, value)
	return nil
}

// SetContent stores the element text of a singleton record.
func (s *SyncItem) SetContent(value string) error {
	if s.committed {
		return ErrItemCommitted
	}
	s.item.SetChild("", value)
	return nil
}

// Commit queues the record. dirty routes it to the full-reconciliation
// set; ordered merges it with a queued duplicate and restores dependency
// order; with neither the caller guarantees the order. It reports whether
// the record was merged into a queued one.
func (s *SyncItem) Commit(ctx context.Context, dirty, ordered bool) (bool, error) {
	if dirty && ordered {
		return false, ErrDirtyAndOrdered
	}
	if s.committed {
		return false, ErrItemCommitted
	}
	if !s.item.HasPrimaryKey() {
		return false, dataitem.ErrNoPrimaryKey
	}

	mode := queue.ModeUnordered
	switch {
	case dirty:
		mode = queue.ModeDirty
	case ordered:
		mode = queue.ModeOrdered
	}

	merged, err := s.queue.Add(s.item, mode)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("item", s.item.String()).Msg("commit rejected")
		return false, err
	}
	s.committed = true
	return merged, nil
}

func setField(item *dataitem.Item, name, value string) {
	if codec.IsAttribute(name) {
		item.SetAttribute(name, value)
		return
	}
	item.SetChild(name, value)
}
