package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// StubClock hands out a controllable time: a fixed base plus whatever
// has been added through Advance. Safe for concurrent use, so services
// under test can read it from their own goroutines.
type StubClock struct {
	mu      sync.Mutex
	base    time.Time
	elapsed time.Duration
}

// NewStubClock creates a StubClock starting at t.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{base: t}
}

// FixedClock starts at 2024-01-15 10:30:00 UTC, the timestamp most
// fixtures assume.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.Add(c.elapsed)
}

// Advance moves the clock forward by d. Tests advance between commands
// so timestamp restoration on undo is actually observable.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.elapsed += d
	c.mu.Unlock()
}

// StubIDGenerator mints sequential ids ("id-1", "id-2", ...) so tests
// can name the items a command is about to create.
type StubIDGenerator struct {
	counter atomic.Int64
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	return fmt.Sprintf("id-%d", g.counter.Add(1))
}
