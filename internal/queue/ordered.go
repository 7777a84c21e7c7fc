package queue

import (
	"github.com/fanyer/presto-sub061/internal/dataitem"
)

// addOrdered inserts item into ACTIVE, collapsing it into a queued record
// with the same identity, then moves items so that the record sits after
// the queued records it references and before the queued records that
// reference it.
func (q *Queue) addOrdered(item *dataitem.Item) (bool, error) {
	if !item.HasPrimaryKey() {
		return false, dataitem.ErrNoPrimaryKey
	}

	merged := false
	existing := q.active.Find(item)
	switch {
	case existing == nil:
		if err := q.active.AddItem(item); err != nil {
			return false, err
		}
	case existing != item:
		status, err := existing.Merge(item)
		if err != nil {
			return false, err
		}
		merged = true
		if status == dataitem.MergeDeleted {
			q.logger.Debug().Str("item", existing.String()).Msg("queued add cancelled by delete")
			return true, nil
		}
		item = existing
	}

	q.placeAfterAnchor(item)
	q.placeBeforeDependents(item)
	return merged, nil
}

// anchor returns the queued record item should follow: the "previous"
// sibling when it is queued, otherwise the "parent".
func (q *Queue) anchor(item *dataitem.Item) *dataitem.Item {
	if a := q.active.FindReference(item.Type, item.PreviousRef()); a != nil && a != item {
		return a
	}
	if a := q.active.FindReference(item.Type, item.ParentRef()); a != nil && a != item {
		return a
	}
	return nil
}

// references returns every queued record item points to.
func (q *Queue) references(item *dataitem.Item) []*dataitem.Item {
	var refs []*dataitem.Item
	for _, ref := range []string{item.PreviousRef(), item.ParentRef()} {
		if a := q.active.FindReference(item.Type, ref); a != nil && a != item {
			refs = append(refs, a)
		}
	}
	return refs
}

func (q *Queue) placeAfterAnchor(item *dataitem.Item) {
	a := q.anchor(item)
	if a == nil {
		return
	}
	if q.active.Precedes(item, a) {
		// the anchor moves, not the item, so records already behind the item
		// keep their place
		_ = q.active.AddBefore(a, item)
		q.logger.Debug().Str("item", item.String()).Str("anchor", a.String()).Msg("moved anchor before item")
		q.repair(a)
	} else {
		_ = q.active.AddAfter(item, a)
		q.logger.Debug().Str("item", item.String()).Str("anchor", a.String()).Msg("placed item after anchor")
	}
	q.repair(item)
}

// placeBeforeDependents moves item in front of the first queued record
// that references it and currently precedes it.
func (q *Queue) placeBeforeDependents(item *dataitem.Item) {
	key, value := item.PrimaryKey()
	if key != item.Type.PrimaryKeyName() {
		return
	}
	base := item.Type.BaseType()
	for candidate := range q.active.All() {
		if candidate == item {
			return
		}
		if candidate.Type.BaseType() != base {
			continue
		}
		if candidate.PreviousRef() == value || candidate.ParentRef() == value {
			_ = q.active.AddBefore(item, candidate)
			q.logger.Debug().Str("item", item.String()).Str("dependent", candidate.String()).Msg("moved item before dependent")
			q.repair(item)
			return
		}
	}
}

// repair walks the references of an item that was moved towards the front
// and pulls every reference that now follows it in front of it, then does
// the same for each pulled record. Moving a record forward never breaks the
// records that depend on it. Reference cycles stop after a bounded number
// of moves.
func (q *Queue) repair(start *dataitem.Item) {
	work := []*dataitem.Item{start}
	budget := 8*q.active.Len() + 8
	for len(work) > 0 && budget > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]
		for _, ref := range q.references(item) {
			if !q.active.Precedes(item, ref) {
				continue
			}
			budget--
			if budget <= 0 {
				q.logger.Warn().Str("item", item.String()).Msg("reference cycle in sync queue")
				return
			}
			_ = q.active.AddBefore(ref, item)
			work = append(work, ref)
		}
	}
}
