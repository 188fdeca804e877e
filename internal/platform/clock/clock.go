package clock

import (
	"sync"
	"time"
)

// System is clock returning current UTC time.
type System struct{}

// Now returns current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Manual is clock returning manually set time.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns Manual clock set to now.
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns current time of clock.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Advance moves clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}

// Set sets clock to now.
func (m *Manual) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
}
