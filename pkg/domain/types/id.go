package types

import "github.com/google/uuid"

// RunID identifies a single invocation of the downloader. It is used only
// for log correlation and never persisted.
type RunID string

// NewRunID generates a new random RunID
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}
