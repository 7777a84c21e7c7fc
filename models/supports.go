package models

// Supports is a category of syncable data that can be enabled independently
// and has its own sync cursor.
type Supports int

const (
	SupportsBookmark Supports = iota
	SupportsContact
	SupportsEncryption
	SupportsExtension
	SupportsFeed
	SupportsNote
	SupportsPasswordManager
	SupportsSearches
	SupportsSpeeddial
	SupportsSpeeddial2
	SupportsTypedHistory
	SupportsURLFilter

	// SupportsMax is a sentinel that addresses all supports types at once
	// where an operation accepts it (see ResetSupportsState).
	SupportsMax
)

var supportsNames = [SupportsMax]string{
	SupportsBookmark:        "bookmark",
	SupportsContact:         "contact",
	SupportsEncryption:      "encryption",
	SupportsExtension:       "extension",
	SupportsFeed:            "feed",
	SupportsNote:            "note",
	SupportsPasswordManager: "password_manager",
	SupportsSearches:        "search_engine",
	SupportsSpeeddial:       "speeddial",
	SupportsSpeeddial2:      "speeddial2",
	SupportsTypedHistory:    "typed_history",
	SupportsURLFilter:       "urlfilter",
}

// String returns the name used in <supports> elements.
func (s Supports) String() string {
	if s < 0 || s >= SupportsMax {
		return "all"
	}
	return supportsNames[s]
}

// ParseSupports resolves a <supports> element name.
func ParseSupports(name string) (Supports, bool) {
	for s := Supports(0); s < SupportsMax; s++ {
		if supportsNames[s] == name {
			return s, true
		}
	}
	return SupportsMax, false
}

// AllSupports returns every supports type in wire order.
func AllSupports() []Supports {
	all := make([]Supports, 0, SupportsMax)
	for s := Supports(0); s < SupportsMax; s++ {
		all = append(all, s)
	}
	return all
}

// MergeDatatype returns the datatype name of the <merge> action for s. Only
// some supports types can ask the server for a merge.
func (s Supports) MergeDatatype() (string, bool) {
	switch s {
	case SupportsBookmark, SupportsContact, SupportsNote, SupportsSearches,
		SupportsSpeeddial, SupportsSpeeddial2, SupportsURLFilter:
		return supportsNames[s], true
	default:
		return "", false
	}
}

// Implemented reports whether the client has data handling for s. Contacts
// and feeds are declared by the protocol but never enabled.
func (s Supports) Implemented() bool {
	return s != SupportsContact && s != SupportsFeed && s >= 0 && s < SupportsMax
}

// TypesFromSupports lists the record kinds that belong to s in the order
// listeners receive them.
func TypesFromSupports(s Supports) []DataItemType {
	switch s {
	case SupportsBookmark:
		return []DataItemType{DataItemBookmark}
	case SupportsContact:
		return []DataItemType{DataItemContact}
	case SupportsEncryption:
		return []DataItemType{DataItemEncryptionKey, DataItemEncryptionType}
	case SupportsExtension:
		return []DataItemType{DataItemExtension}
	case SupportsFeed:
		return []DataItemType{DataItemFeed}
	case SupportsNote:
		return []DataItemType{DataItemNote}
	case SupportsPasswordManager:
		return []DataItemType{DataItemPMHTTPAuth, DataItemPMFormAuth}
	case SupportsSearches:
		return []DataItemType{DataItemSearch}
	case SupportsSpeeddial:
		return []DataItemType{DataItemSpeeddial}
	case SupportsSpeeddial2:
		return []DataItemType{DataItemSpeeddial2, DataItemSpeeddial2Settings}
	case SupportsTypedHistory:
		return []DataItemType{DataItemTypedHistory}
	case SupportsURLFilter:
		return []DataItemType{DataItemURLFilter}
	default:
		return nil
	}
}

// SupportsFromType returns the supports type a record kind belongs to, or
// SupportsMax for the generic kind.
func SupportsFromType(t DataItemType) Supports {
	switch t {
	case DataItemBookmark, DataItemBookmarkFolder, DataItemBookmarkSeparator:
		return SupportsBookmark
	case DataItemContact:
		return SupportsContact
	case DataItemEncryptionKey, DataItemEncryptionType:
		return SupportsEncryption
	case DataItemExtension:
		return SupportsExtension
	case DataItemFeed:
		return SupportsFeed
	case DataItemNote, DataItemNoteFolder, DataItemNoteSeparator:
		return SupportsNote
	case DataItemPMFormAuth, DataItemPMHTTPAuth:
		return SupportsPasswordManager
	case DataItemSearch:
		return SupportsSearches
	case DataItemSpeeddial:
		return SupportsSpeeddial
	case DataItemSpeeddial2, DataItemSpeeddial2Settings, DataItemBlacklist:
		return SupportsSpeeddial2
	case DataItemTypedHistory:
		return SupportsTypedHistory
	case DataItemURLFilter:
		return SupportsURLFilter
	default:
		return SupportsMax
	}
}

// SupportsSet is a set of enabled supports types.
type SupportsSet uint32

// Has reports whether s is in the set.
func (set SupportsSet) Has(s Supports) bool {
	if s < 0 || s >= SupportsMax {
		return false
	}
	return set&(1<<uint(s)) != 0
}

// With returns the set with s added or removed.
func (set SupportsSet) With(s Supports, on bool) SupportsSet {
	if s < 0 || s >= SupportsMax {
		return set
	}
	if on {
		return set | 1<<uint(s)
	}
	return set &^ (1 << uint(s))
}

// List returns the members in wire order.
func (set SupportsSet) List() []Supports {
	var out []Supports
	for s := Supports(0); s < SupportsMax; s++ {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// NewSupportsSet builds a set from the given members.
func NewSupportsSet(members ...Supports) SupportsSet {
	var set SupportsSet
	for _, s := range members {
		set = set.With(s, true)
	}
	return set
}
