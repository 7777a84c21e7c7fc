package dataitem

import (
	"container/list"
	"fmt"
	"iter"

	"github.com/fanyer/presto-sub061/models"
)

// Collection is an insertion-ordered sequence of items.
//
// Membership is tracked on the item itself, so Contains and RemoveItem are
// O(1). A hashed collection additionally keeps a primary-key index that
// makes FindPrimaryKey O(1); a plain collection scans.
type Collection struct {
	items *list.List

	hashed     bool
	index      map[string][]*Item
	indexLimit int
	degraded   bool
}

// HashOption configures a hashed collection.
type HashOption func(*Collection)

// WithIndexLimit caps the number of primary-key index entries. When the
// index would grow past the limit it is dropped and lookups fall back to a
// linear scan. A limit of zero means no limit.
func WithIndexLimit(limit int) HashOption {
	return func(c *Collection) {
		c.indexLimit = limit
	}
}

// NewCollection returns an empty collection without a primary-key index.
func NewCollection() *Collection {
	return &Collection{items: list.New()}
}

// NewHashedCollection returns an empty collection with a primary-key index.
func NewHashedCollection(opts ...HashOption) *Collection {
	c := &Collection{
		items:  list.New(),
		hashed: true,
		index:  make(map[string][]*Item),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return c.items.Len()
}

// IsEmpty reports whether the collection holds no items.
func (c *Collection) IsEmpty() bool {
	return c.items.Len() == 0
}

// Hashed reports whether the collection was created with an index.
func (c *Collection) Hashed() bool {
	return c.hashed
}

// IndexDegraded reports whether the index was dropped and lookups scan.
func (c *Collection) IndexDegraded() bool {
	return c.degraded
}

// Contains reports whether item is a member of c.
func (c *Collection) Contains(item *Item) bool {
	return item != nil && item.owner == c
}

// First returns the first item, or nil.
func (c *Collection) First() *Item {
	if e := c.items.Front(); e != nil {
		return e.Value.(*Item)
	}
	return nil
}

// Last returns the last item, or nil.
func (c *Collection) Last() *Item {
	if e := c.items.Back(); e != nil {
		return e.Value.(*Item)
	}
	return nil
}

// Next returns the item following item in c, or nil.
func (c *Collection) Next(item *Item) *Item {
	if !c.Contains(item) {
		return nil
	}
	if e := item.elem.Next(); e != nil {
		return e.Value.(*Item)
	}
	return nil
}

// All iterates over the items in order. The yielded item may be removed
// or moved to another collection during iteration.
func (c *Collection) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		for e := c.items.Front(); e != nil; {
			next := e.Next()
			if !yield(e.Value.(*Item)) {
				return
			}
			e = next
		}
	}
}

// Items returns a snapshot of the items in order.
func (c *Collection) Items() []*Item {
	out := make([]*Item, 0, c.items.Len())
	for e := c.items.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Item))
	}
	return out
}

// AddItem appends item, moving it out of the collection that held it.
func (c *Collection) AddItem(item *Item) error {
	if item == nil {
		return ErrNilItem
	}
	c.detach(item)
	item.elem = c.items.PushBack(item)
	c.attach(item)
	return nil
}

// AddFirst inserts item at the front.
func (c *Collection) AddFirst(item *Item) error {
	if item == nil {
		return ErrNilItem
	}
	c.detach(item)
	item.elem = c.items.PushFront(item)
	c.attach(item)
	return nil
}

// AddBefore places item immediately before anchor, which must be a member.
func (c *Collection) AddBefore(item, anchor *Item) error {
	if item == nil || anchor == nil {
		return ErrNilItem
	}
	if !c.Contains(anchor) {
		return fmt.Errorf("%w: anchor %s", ErrNotMember, anchor)
	}
	if item == anchor {
		return nil
	}
	c.detach(item)
	item.elem = c.items.InsertBefore(item, anchor.elem)
	c.attach(item)
	return nil
}

// AddAfter places item immediately after anchor, which must be a member.
func (c *Collection) AddAfter(item, anchor *Item) error {
	if item == nil || anchor == nil {
		return ErrNilItem
	}
	if !c.Contains(anchor) {
		return fmt.Errorf("%w: anchor %s", ErrNotMember, anchor)
	}
	if item == anchor {
		return nil
	}
	c.detach(item)
	item.elem = c.items.InsertAfter(item, anchor.elem)
	c.attach(item)
	return nil
}

// RemoveItem removes item from c. It reports whether item was a member.
func (c *Collection) RemoveItem(item *Item) bool {
	if !c.Contains(item) {
		return false
	}
	c.items.Remove(item.elem)
	c.unindex(item)
	item.owner, item.elem = nil, nil
	return true
}

// Clear removes every item.
func (c *Collection) Clear() {
	for e := c.items.Front(); e != nil; e = e.Next() {
		item := e.Value.(*Item)
		item.owner, item.elem = nil, nil
	}
	c.items.Init()
	if c.hashed && !c.degraded {
		c.index = make(map[string][]*Item)
	}
}

// AppendCollection moves every item of other to the end of c, keeping
// their order.
func (c *Collection) AppendCollection(other *Collection) {
	if other == nil || other == c {
		return
	}
	for item := range other.All() {
		_ = c.AddItem(item)
	}
}

// PrependCollection moves every item of other to the front of c, keeping
// their order.
func (c *Collection) PrependCollection(other *Collection) {
	if other == nil || other == c {
		return
	}
	for e := other.items.Back(); e != nil; {
		prev := e.Prev()
		_ = c.AddFirst(e.Value.(*Item))
		e = prev
	}
}

// Precedes reports whether a comes before b. Both must be members.
func (c *Collection) Precedes(a, b *Item) bool {
	if !c.Contains(a) || !c.Contains(b) || a == b {
		return false
	}
	for e := a.elem.Next(); e != nil; e = e.Next() {
		if e.Value.(*Item) == b {
			return true
		}
	}
	return false
}

// Position returns the zero-based index of item, or -1.
func (c *Collection) Position(item *Item) int {
	if !c.Contains(item) {
		return -1
	}
	pos := 0
	for e := c.items.Front(); e != nil; e = e.Next() {
		if e.Value.(*Item) == item {
			return pos
		}
		pos++
	}
	return -1
}

// FindPrimaryKey returns the first item with the same base type and
// primary key, or nil.
func (c *Collection) FindPrimaryKey(t models.DataItemType, key, value string) *Item {
	if c.hashed && !c.degraded {
		if found := c.index[hashKey(t, key, value)]; len(found) > 0 {
			return found[0]
		}
		return nil
	}
	base := t.BaseType()
	for e := c.items.Front(); e != nil; e = e.Next() {
		item := e.Value.(*Item)
		if item.key == key && item.value == value && item.Type.BaseType() == base {
			return item
		}
	}
	return nil
}

// Find returns the member that identifies the same record as item, which
// may be item itself.
func (c *Collection) Find(item *Item) *Item {
	if item == nil {
		return nil
	}
	return c.FindPrimaryKey(item.Type, item.key, item.value)
}

// FindReference returns the member of base type t whose primary key value
// equals ref. It is used to resolve "previous" and "parent" references.
func (c *Collection) FindReference(t models.DataItemType, ref string) *Item {
	if ref == "" {
		return nil
	}
	return c.FindPrimaryKey(t, t.PrimaryKeyName(), ref)
}

// RemoveWhere removes every item for which match returns true and returns
// the number removed.
func (c *Collection) RemoveWhere(match func(*Item) bool) int {
	removed := 0
	for item := range c.All() {
		if match(item) {
			c.RemoveItem(item)
			removed++
		}
	}
	return removed
}

func (c *Collection) detach(item *Item) {
	if item.owner != nil {
		item.owner.RemoveItem(item)
	}
}

func (c *Collection) attach(item *Item) {
	item.owner = c
	c.reindex(item)
}

// reindex adds item to the index once it has a primary key.
func (c *Collection) reindex(item *Item) {
	if !c.hashed || c.degraded || !item.HasPrimaryKey() {
		return
	}
	k := hashKey(item.Type, item.key, item.value)
	bucket := c.index[k]
	for _, existing := range bucket {
		if existing == item {
			return
		}
	}
	if _, ok := c.index[k]; !ok && c.indexLimit > 0 && len(c.index) >= c.indexLimit {
		c.degrade()
		return
	}
	c.index[k] = append(bucket, item)
}

func (c *Collection) unindex(item *Item) {
	if !c.hashed || c.degraded || !item.HasPrimaryKey() {
		return
	}
	k := hashKey(item.Type, item.key, item.value)
	bucket := c.index[k]
	for idx, existing := range bucket {
		if existing == item {
			bucket = append(bucket[:idx], bucket[idx+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.index, k)
		return
	}
	c.index[k] = bucket
}

// degrade drops the index; FindPrimaryKey scans from now on.
func (c *Collection) degrade() {
	c.degraded = true
	c.index = nil
}

func hashKey(t models.DataItemType, key, value string) string {
	return fmt.Sprintf("%02x:%s:%s", int(t.BaseType()), key, value)
}
