// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dataitem implements the synchronizable record and the ordered
// containers that hold it.
//
// An [Item] is a typed record identified by a primary key (name and value)
// and carrying two flat, ordered lists of fields: attributes and children.
// Items are owned by at most one [Collection] at a time; adding an item to
// a collection first removes it from the collection that held it.
//
// [Item.Merge] reconciles two items sharing a primary key. A hashed
// collection ([NewHashedCollection]) keeps a primary-key index for large
// merges and falls back to a linear scan when the index cannot grow.
package dataitem
