package desk

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the timestamps stamped onto history actions and
// trash/creation metadata. Injecting it keeps the action log
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator mints ids for created items, pasted clones and session
// tokens.
type IDGenerator interface {
	New() string
}

// UUIDGenerator mints random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
