package clock_test

import (
	"testing"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/clock"
	"github.com/stretchr/testify/assert"
)

func TestUnitSystemNow(t *testing.T) {
	now := clock.System{}.Now()

	assert.InDelta(
		t,
		time.Now().UTC().UnixMilli(),
		now.UnixMilli(),
		float64(50*time.Millisecond),
		"should return current time",
	)
	assert.Equal(t, time.UTC, now.Location(), "should return UTC time")
}

func TestUnitManual(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)

	assert.Equal(t, start, c.Now(), "should return set time")

	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now(), "should advance time")

	c.Set(start)
	assert.Equal(t, start, c.Now(), "should set time")
}
