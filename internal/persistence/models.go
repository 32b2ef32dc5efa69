package persistence

import "time"

// DocumentRecord is a named document snapshot stored in persistence. Saving
// under an existing name replaces the payload and increments the revision.
type DocumentRecord struct {
	Name     string
	Revision int
	Payload  []byte
	SavedAt  time.Time
}
