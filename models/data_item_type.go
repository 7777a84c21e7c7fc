// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DataItemType is the enumerated record kind of a synchronizable item.
// The value decides the wire element name, the key names used for merging
// and ordering, and the supports type the record belongs to.
type DataItemType int

const (
	// DataItemGeneric is the zero value and is never sent on the wire.
	DataItemGeneric DataItemType = iota

	DataItemBookmark
	DataItemBookmarkFolder
	DataItemBookmarkSeparator

	DataItemContact

	// DataItemEncryptionKey and DataItemEncryptionType are singleton records
	// with the synthetic primary key id="0".
	DataItemEncryptionKey
	DataItemEncryptionType

	DataItemExtension
	DataItemFeed

	DataItemNote
	DataItemNoteFolder
	DataItemNoteSeparator

	// DataItemPMFormAuth and DataItemPMHTTPAuth are password manager records.
	DataItemPMFormAuth
	DataItemPMHTTPAuth

	DataItemSearch
	DataItemSpeeddial
	DataItemSpeeddial2
	DataItemSpeeddial2Settings
	DataItemBlacklist
	DataItemTypedHistory
	DataItemURLFilter

	dataItemTypeCount
)

var dataItemTypeNames = [dataItemTypeCount]string{
	DataItemGeneric:            "generic",
	DataItemBookmark:           "bookmark",
	DataItemBookmarkFolder:     "bookmark_folder",
	DataItemBookmarkSeparator:  "bookmark_separator",
	DataItemContact:            "contact",
	DataItemEncryptionKey:      "encryption_key",
	DataItemEncryptionType:     "encryption_type",
	DataItemExtension:          "extension",
	DataItemFeed:               "feed",
	DataItemNote:               "note",
	DataItemNoteFolder:         "note_folder",
	DataItemNoteSeparator:      "note_separator",
	DataItemPMFormAuth:         "pm_form_auth",
	DataItemPMHTTPAuth:         "pm_http_auth",
	DataItemSearch:             "search_engine",
	DataItemSpeeddial:          "speeddial",
	DataItemSpeeddial2:         "speeddial2",
	DataItemSpeeddial2Settings: "speeddial2_settings",
	DataItemBlacklist:          "speeddial2_blacklist",
	DataItemTypedHistory:       "typed_history",
	DataItemURLFilter:          "urlfilter",
}

// String returns the wire element name of the record kind.
func (t DataItemType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return dataItemTypeNames[t]
}

// Valid reports whether t is one of the declared record kinds.
func (t DataItemType) Valid() bool {
	return t >= DataItemGeneric && t < dataItemTypeCount
}

// ParseDataItemType resolves a wire element name. The generic kind is not
// addressable by name.
func ParseDataItemType(name string) (DataItemType, bool) {
	for t := DataItemBookmark; t < dataItemTypeCount; t++ {
		if dataItemTypeNames[t] == name {
			return t, true
		}
	}
	return DataItemGeneric, false
}

// AllDataItemTypes returns every addressable record kind in declaration order.
func AllDataItemTypes() []DataItemType {
	types := make([]DataItemType, 0, dataItemTypeCount-1)
	for t := DataItemBookmark; t < dataItemTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// BaseType coalesces sub-kinds that may reference each other positionally.
// A bookmark may name a folder or a separator as its "previous" sibling, so
// all three share the bookmark base type.
func (t DataItemType) BaseType() DataItemType {
	switch t {
	case DataItemBookmarkFolder, DataItemBookmarkSeparator:
		return DataItemBookmark
	case DataItemNoteFolder, DataItemNoteSeparator:
		return DataItemNote
	case DataItemSpeeddial2Settings, DataItemBlacklist:
		return DataItemSpeeddial2
	default:
		return t
	}
}

// PrimaryKeyName returns the field name that identifies a record of kind t.
func (t DataItemType) PrimaryKeyName() string {
	switch t {
	case DataItemSpeeddial:
		return "position"
	case DataItemSpeeddial2Settings:
		return "partner_id"
	case DataItemTypedHistory:
		return "content"
	default:
		return "id"
	}
}

// PreviousKeyName returns the field that names the preceding sibling, or an
// empty string for kinds without positional order.
func (t DataItemType) PreviousKeyName() string {
	switch t {
	case DataItemEncryptionKey, DataItemEncryptionType, DataItemSpeeddial:
		return ""
	default:
		return "previous"
	}
}

// ParentKeyName returns the field that names the containing record, or an
// empty string for flat kinds. Folders carry a parent so nested folders are
// sent parent-first.
func (t DataItemType) ParentKeyName() string {
	switch t {
	case DataItemEncryptionKey, DataItemEncryptionType,
		DataItemSearch,
		DataItemSpeeddial, DataItemSpeeddial2, DataItemSpeeddial2Settings,
		DataItemTypedHistory, DataItemURLFilter:
		return ""
	default:
		return "parent"
	}
}

// IsSingleton reports whether at most one record of kind t can exist.
func (t DataItemType) IsSingleton() bool {
	return t == DataItemEncryptionKey || t == DataItemEncryptionType
}
