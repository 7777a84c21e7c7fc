package models

// SyncPreferences are the user choices persisted between sessions.
type SyncPreferences struct {
	// Enabled is the set of supports types the user synchronizes.
	Enabled SupportsSet
	// CompleteSync forces a full reconciliation on the next cycle. It is
	// set when the server reports dirty state and cleared after a
	// successful full cycle.
	CompleteSync bool
}
