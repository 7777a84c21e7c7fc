package models

import "time"

// DefaultSyncState is the cursor value of a type that was never synced.
const DefaultSyncState = "0"

// SyncState holds the server-issued cursors. Global is the cursor of the
// last completed exchange; Cursors holds one value per supports type. A
// type whose cursor differs from Global has a backlog to request.
type SyncState struct {
	// Global is the cursor sent as the "syncstate" attribute.
	Global string `json:"global"`

	// Cursors holds per supports type cursors. Missing entries are treated
	// as DefaultSyncState.
	Cursors map[Supports]string `json:"cursors,omitempty"`

	// Dirty is set when the server asked for a full reconciliation.
	Dirty bool `json:"dirty"`

	// Persistent is cleared for a supports type while one of its listeners
	// has deferred the delivered items.
	Persistent map[Supports]bool `json:"-"`
}

// NewSyncState returns a state with every cursor at its default.
func NewSyncState() SyncState {
	return SyncState{
		Global:     DefaultSyncState,
		Cursors:    make(map[Supports]string),
		Persistent: make(map[Supports]bool),
	}
}

// GlobalCursor returns Global or DefaultSyncState when unset.
func (s SyncState) GlobalCursor() string {
	if s.Global == "" {
		return DefaultSyncState
	}
	return s.Global
}

// Cursor returns the cursor of a supports type.
func (s SyncState) Cursor(supports Supports) string {
	if c, ok := s.Cursors[supports]; ok && c != "" {
		return c
	}
	return DefaultSyncState
}

// SetCursor stores the cursor of a supports type.
func (s *SyncState) SetCursor(supports Supports, cursor string) {
	if s.Cursors == nil {
		s.Cursors = make(map[Supports]string)
	}
	s.Cursors[supports] = cursor
}

// IsDefault reports whether the supports type was never synced.
func (s SyncState) IsDefault(supports Supports) bool {
	return s.Cursor(supports) == DefaultSyncState
}

// OutOfSync reports whether a partial backlog must be requested for the
// supports type.
func (s SyncState) OutOfSync(supports Supports) bool {
	return s.Cursor(supports) != s.GlobalCursor()
}

// Reset puts a supports type back to its default cursor. SupportsMax resets
// every type and the global cursor.
func (s *SyncState) Reset(supports Supports) {
	if supports == SupportsMax {
		s.Global = DefaultSyncState
		s.Cursors = make(map[Supports]string)
		return
	}
	s.SetCursor(supports, DefaultSyncState)
}

// SetPersistent records whether the cursor of a supports type may be
// written once the cycle completes.
func (s *SyncState) SetPersistent(supports Supports, persistent bool) {
	if s.Persistent == nil {
		s.Persistent = make(map[Supports]bool)
	}
	s.Persistent[supports] = persistent
}

// IsPersistent reports whether the cursor of a supports type may be written.
// Types never marked are persistent.
func (s SyncState) IsPersistent(supports Supports) bool {
	p, ok := s.Persistent[supports]
	return !ok || p
}

// Clone returns a deep copy.
func (s SyncState) Clone() SyncState {
	c := SyncState{Global: s.Global, Dirty: s.Dirty}
	c.Cursors = make(map[Supports]string, len(s.Cursors))
	for k, v := range s.Cursors {
		c.Cursors[k] = v
	}
	c.Persistent = make(map[Supports]bool, len(s.Persistent))
	for k, v := range s.Persistent {
		c.Persistent[k] = v
	}
	return c
}

// ServerInfo is the scheduling advice the server attaches to a response.
// Zero fields mean the server did not send the value.
type ServerInfo struct {
	LongInterval  time.Duration
	ShortInterval time.Duration
	MaxItems      int
	// Error is the optional <error> text inside <server_info>.
	Error string
}
