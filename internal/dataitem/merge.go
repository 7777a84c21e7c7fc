package dataitem

import (
	"fmt"

	"github.com/fanyer/presto-sub061/models"
)

// MergeStatus is the outcome of Merge.
type MergeStatus int

const (
	// MergeUnchanged means the receiver was not modified.
	MergeUnchanged MergeStatus = iota
	// MergeMerged means the receiver now carries changed data or status.
	MergeMerged
	// MergeDeleted means an add followed by a delete cancelled out and the
	// receiver was removed from its collection.
	MergeDeleted
)

func (s MergeStatus) String() string {
	switch s {
	case MergeMerged:
		return "merged"
	case MergeDeleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Merge folds other into i. Both must carry the same primary key.
//
// Fields found in other but not in i are moved over; fields present in both
// are overwritten with other's value when it differs, so the second operand
// wins same-name conflicts. other is left without fields afterwards and must
// not be used as an independent record.
func (i *Item) Merge(other *Item) (MergeStatus, error) {
	if other == nil {
		return MergeUnchanged, ErrNilItem
	}
	if i.key != other.key || i.value != other.value {
		return MergeUnchanged, fmt.Errorf("%w: %s=%s vs %s=%s", ErrPrimaryKeyMismatch, i.key, i.value, other.key, other.value)
	}
	if i == other {
		return MergeUnchanged, nil
	}

	if other.Status == models.StatusDeleted {
		switch i.Status {
		case models.StatusDeleted:
			return MergeUnchanged, nil
		case models.StatusModified:
			i.Status = models.StatusDeleted
			i.clearExceptPrimaryKey()
			other.attributes, other.children = nil, nil
			return MergeMerged, nil
		default:
			// added then deleted: the server never needs to hear about it
			i.Remove()
			other.attributes, other.children = nil, nil
			return MergeDeleted, nil
		}
	}

	if i.Status == models.StatusDeleted {
		pkIsChild := i.primaryKeyIsChild()
		i.attributes, other.attributes = other.attributes, nil
		i.children, other.children = other.children, nil
		if _, ok := i.Lookup(i.key); !ok && i.key != "" {
			if pkIsChild {
				i.SetChild(i.key, i.value)
			} else {
				i.SetAttribute(i.key, i.value)
			}
		}
		i.Status = models.StatusModified
		return MergeMerged, nil
	}

	changed := false
	for _, f := range other.attributes {
		if i.SetAttribute(f.Name, f.Value) {
			changed = true
		}
	}
	for _, f := range other.children {
		if i.SetChild(f.Name, f.Value) {
			changed = true
		}
	}
	other.attributes, other.children = nil, nil

	if changed {
		return MergeMerged, nil
	}
	return MergeUnchanged, nil
}
