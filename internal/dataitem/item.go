package dataitem

import (
	"container/list"
	"fmt"
	"slices"

	"github.com/fanyer/presto-sub061/models"
)

// Field is a flat name/value pair. An item holds fields either as
// attributes or as child elements; the wire codec decides which.
type Field struct {
	Name  string
	Value string
}

// Item is a synchronizable record.
//
// The primary key is set once via SetPrimaryKey and never changes
// afterwards. The item does not store its own copy of the key as a field;
// producers add the matching attribute or child themselves, which is what
// the wire format carries.
type Item struct {
	Type   models.DataItemType
	Status models.ItemStatus

	key   string
	value string

	attributes []Field
	children   []Field

	owner *Collection
	elem  *list.Element
}

// New returns an empty item of kind t with the given status.
func New(t models.DataItemType, status models.ItemStatus) *Item {
	return &Item{Type: t, Status: status}
}

// NewWithKey returns an item with its primary key set and the matching
// attribute added.
func NewWithKey(t models.DataItemType, status models.ItemStatus, key, value string) *Item {
	item := New(t, status)
	item.key, item.value = key, value
	item.SetAttribute(key, value)
	return item
}

// SetPrimaryKey fixes the primary key of the item. Setting the same key
// again is a no-op; setting a different one fails.
func (i *Item) SetPrimaryKey(key, value string) error {
	if i.key != "" || i.value != "" {
		if i.key == key && i.value == value {
			return nil
		}
		return fmt.Errorf("%w: %s=%s", ErrPrimaryKeyImmutable, i.key, i.value)
	}
	i.key, i.value = key, value
	if i.owner != nil {
		i.owner.reindex(i)
	}
	return nil
}

// PrimaryKey returns the primary key name and value.
func (i *Item) PrimaryKey() (string, string) {
	return i.key, i.value
}

// HasPrimaryKey reports whether a primary key value is set.
func (i *Item) HasPrimaryKey() bool {
	return i.key != "" && i.value != ""
}

// SameRecord reports whether other identifies the same logical record:
// same base type and same primary key.
func (i *Item) SameRecord(other *Item) bool {
	if other == nil {
		return false
	}
	return i.Type.BaseType() == other.Type.BaseType() && i.key == other.key && i.value == other.value
}

// Owner returns the collection currently holding the item, or nil.
func (i *Item) Owner() *Collection {
	return i.owner
}

// Remove detaches the item from its collection, if any.
func (i *Item) Remove() {
	if i.owner != nil {
		i.owner.RemoveItem(i)
	}
}

// Attributes returns a copy of the attribute list.
func (i *Item) Attributes() []Field {
	return slices.Clone(i.attributes)
}

// Children returns a copy of the child list.
func (i *Item) Children() []Field {
	return slices.Clone(i.children)
}

// HasAttributes reports whether the item has any attribute.
func (i *Item) HasAttributes() bool {
	return len(i.attributes) > 0
}

// HasChildren reports whether the item has any child.
func (i *Item) HasChildren() bool {
	return len(i.children) > 0
}

// Attribute returns the value of the named attribute.
func (i *Item) Attribute(name string) (string, bool) {
	return find(i.attributes, name)
}

// Child returns the value of the named child.
func (i *Item) Child(name string) (string, bool) {
	return find(i.children, name)
}

// Lookup returns the named field, looking at attributes first.
func (i *Item) Lookup(name string) (string, bool) {
	if v, ok := find(i.attributes, name); ok {
		return v, true
	}
	return find(i.children, name)
}

// SetAttribute adds or overwrites an attribute. It reports whether the
// stored value changed.
func (i *Item) SetAttribute(name, value string) bool {
	var changed bool
	i.attributes, changed = set(i.attributes, name, value)
	return changed
}

// SetChild adds or overwrites a child. It reports whether the stored value
// changed.
func (i *Item) SetChild(name, value string) bool {
	var changed bool
	i.children, changed = set(i.children, name, value)
	return changed
}

// RemoveAttribute drops the named attribute.
func (i *Item) RemoveAttribute(name string) {
	i.attributes = slices.DeleteFunc(i.attributes, func(f Field) bool { return f.Name == name })
}

// RemoveChild drops the named child.
func (i *Item) RemoveChild(name string) {
	i.children = slices.DeleteFunc(i.children, func(f Field) bool { return f.Name == name })
}

// PreviousRef returns the primary key value of the preceding sibling, or
// an empty string.
func (i *Item) PreviousRef() string {
	name := i.Type.PreviousKeyName()
	if name == "" {
		return ""
	}
	v, _ := i.Lookup(name)
	return v
}

// ParentRef returns the primary key value of the containing record, or an
// empty string.
func (i *Item) ParentRef() string {
	name := i.Type.ParentKeyName()
	if name == "" {
		return ""
	}
	v, _ := i.Lookup(name)
	return v
}

// Copy returns a deep copy that belongs to no collection.
func (i *Item) Copy() *Item {
	return &Item{
		Type:       i.Type,
		Status:     i.Status,
		key:        i.key,
		value:      i.value,
		attributes: slices.Clone(i.attributes),
		children:   slices.Clone(i.children),
	}
}

// Equal reports whether both items carry the same type, status, primary
// key, and fields in the same order.
func (i *Item) Equal(other *Item) bool {
	if other == nil {
		return false
	}
	return i.Type == other.Type &&
		i.Status == other.Status &&
		i.key == other.key &&
		i.value == other.value &&
		slices.Equal(i.attributes, other.attributes) &&
		slices.Equal(i.children, other.children)
}

// String is used in log lines.
func (i *Item) String() string {
	return fmt.Sprintf("%s[%s=%s %s]", i.Type, i.key, i.value, i.Status)
}

// clearExceptPrimaryKey drops every field except the one carrying the
// primary key, which is kept in the list it was found in (attributes by
// default).
func (i *Item) clearExceptPrimaryKey() {
	pkIsChild := i.primaryKeyIsChild()
	i.attributes = nil
	i.children = nil
	if i.key == "" {
		return
	}
	if pkIsChild {
		i.children = []Field{{Name: i.key, Value: i.value}}
		return
	}
	i.attributes = []Field{{Name: i.key, Value: i.value}}
}

func (i *Item) primaryKeyIsChild() bool {
	_, inAttrs := find(i.attributes, i.key)
	_, inChildren := find(i.children, i.key)
	return inChildren && !inAttrs
}

func find(fields []Field, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func set(fields []Field, name, value string) ([]Field, bool) {
	for idx := range fields {
		if fields[idx].Name == name {
			if fields[idx].Value == value {
				return fields, false
			}
			fields[idx].Value = value
			return fields, true
		}
	}
	return append(fields, Field{Name: name, Value: value}), true
}
