package launcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTickerAlignsToMinute(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 10, 9, 41, 25, 0, time.UTC)
	s := newManualScheduler(start)

	var ticks []time.Time
	c := NewClockTicker(s, time.Minute, func(now time.Time) { ticks = append(ticks, now) })
	c.now = s.Now

	c.Start()
	c.Start()
	assert.Equal(t, 1, s.Pending(), "second Start must not stack timers")

	s.Advance(34 * time.Second)
	assert.Empty(t, ticks)

	s.Advance(time.Second)
	require.Len(t, ticks, 1)
	assert.Equal(t, "09:42", ticks[0].Format("15:04"))

	s.Advance(2 * time.Minute)
	require.Len(t, ticks, 3)
	assert.Equal(t, "09:44", ticks[2].Format("15:04"))

	c.Stop()
	assert.False(t, c.Running())
	s.Advance(10 * time.Minute)
	assert.Len(t, ticks, 3)
	assert.Zero(t, s.Pending())
}

func TestUntilNextBoundary(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2024, 3, 10, 9, 41, 50, 0, zone)
	assert.Equal(t, 10*time.Second, untilNextBoundary(now, time.Minute))

	onBoundary := time.Date(2024, 3, 10, 9, 42, 0, 0, time.UTC)
	assert.Equal(t, time.Minute, untilNextBoundary(onBoundary, time.Minute))
}
