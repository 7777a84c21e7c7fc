package dataitem

import "errors"

var (
	// ErrPrimaryKeyMismatch is returned by Merge when the two items do not
	// identify the same record.
	ErrPrimaryKeyMismatch = errors.New("primary key out of range")

	// ErrPrimaryKeyImmutable is returned when a different primary key is set
	// on an item that already has one.
	ErrPrimaryKeyImmutable = errors.New("primary key already set")

	// ErrNoPrimaryKey is returned for items without a primary key value where
	// one is required.
	ErrNoPrimaryKey = errors.New("item has no primary key")

	// ErrNotMember is returned when an anchor item does not belong to the
	// collection it is used with.
	ErrNotMember = errors.New("item is not a member of the collection")

	// ErrNilItem is returned when a nil item is passed to a collection.
	ErrNilItem = errors.New("nil item")
)
