package store

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time so tests can drive deterministic timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts ID assignment so tests can use predictable IDs.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
