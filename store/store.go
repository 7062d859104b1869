package store

import "errors"

// ErrNotFound is returned by Get when no state exists for a key.
var ErrNotFound = errors.New("key not found")

// State is the accounting record for one subject: the configured net limit
// plus the in/out counters for the epoch identified by Epoch. Counters from
// older epochs are never read back; the record is reset in place when the
// epoch rolls over.
type State struct {
	Limit   uint64 `json:"limit"`
	Epoch   int64  `json:"epoch"`
	Outflow uint64 `json:"outflow"`
	Inflow  uint64 `json:"inflow"`
}

type Store interface {
	// Get retrieves the state for a key, ErrNotFound if absent
	Get(key string) (State, error)

	// Set stores the state for a key, replacing any previous record
	Set(key string, st State) error

	// Delete removes a key
	Delete(key string) error

	// Exists checks if a key exists
	Exists(key string) bool
}
