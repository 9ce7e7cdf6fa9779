package uid

import "github.com/google/uuid"

// UUID produces UUIDv7 strings for correlation IDs and token IDs.
type UUID struct {
	next func() (uuid.UUID, error)
}

// NewUUID returns a UUIDv7 generator.
func NewUUID() *UUID {
	return &UUID{next: uuid.NewV7}
}

// Generate returns the next identifier. A v4 value is used if the v7 source
// cannot read the clock or entropy.
func (u *UUID) Generate() string {
	next := u.next
	if next == nil {
		next = uuid.NewV7
	}

	if id, err := next(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
