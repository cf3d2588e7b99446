// Package idgen generates correlation identifiers for the diagnostics bus.
package idgen

import "github.com/google/uuid"

// New returns a fresh correlation id, used to group every diagnostic event
// emitted by a single compilation run.
func New() string {
	return uuid.New().String()
}
