// Package uuid generates time-ordered identifiers for installment groups.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. UUIDv7 embeds a millisecond timestamp, so
// groups created in sequence sort by their identifier. Falls back to a
// random UUIDv4 if the system entropy source fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}
