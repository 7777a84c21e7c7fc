package models

// ItemStatus is the pending action carried by a record.
type ItemStatus int

const (
	// StatusNone marks a record that only reflects the stored value, e.g. a
	// server copy received during a full reconciliation.
	StatusNone ItemStatus = iota
	StatusAdded
	StatusModified
	StatusDeleted
)

// String returns the value used in the wire "status" attribute. StatusNone
// has no wire form and yields an empty string.
func (s ItemStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	default:
		return ""
	}
}

// ParseItemStatus maps a wire "status" value. Unknown values yield StatusNone.
func ParseItemStatus(s string) ItemStatus {
	switch s {
	case "added":
		return StatusAdded
	case "modified":
		return StatusModified
	case "deleted":
		return StatusDeleted
	default:
		return StatusNone
	}
}
