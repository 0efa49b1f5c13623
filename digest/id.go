package digest

import "github.com/google/uuid"

// NewID returns a process-unique instance identifier, used for store IDs in
// log fields and for subscription tokens, without leaking any part of the
// actual state tree into the log line.
func NewID() string {
	return uuid.NewString()
}
