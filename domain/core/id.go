package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// RunID identifies one analyzer invocation on the logging side channel.
type RunID ID

func (id RunID) String() string { return ID(id).String() }

// NewRunID creates a fresh invocation identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// Short returns the leading eight characters, enough to correlate log lines.
func (id RunID) Short() string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
