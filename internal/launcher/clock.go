package launcher

import (
	"sync"
	"time"
)

// ClockTicker calls tick at each minute boundary while started. The first
// tick lands on the next boundary rather than a full interval after Start.
type ClockTicker struct {
	scheduler Scheduler
	interval  time.Duration
	now       func() time.Time
	tick      func(time.Time)

	mu      sync.Mutex
	cancel  func()
	running bool
}

func NewClockTicker(s Scheduler, interval time.Duration, tick func(time.Time)) *ClockTicker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ClockTicker{
		scheduler: s,
		interval:  interval,
		now:       time.Now,
		tick:      tick,
	}
}

// Start is a no-op if the ticker already runs.
func (c *ClockTicker) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.scheduleLocked()
}

// Stop cancels the pending tick. No tick runs after Stop returns.
func (c *ClockTicker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *ClockTicker) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *ClockTicker) scheduleLocked() {
	c.cancel = c.scheduler.AfterFunc(untilNextBoundary(c.now(), c.interval), c.fire)
}

func (c *ClockTicker) fire() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.scheduleLocked()
	c.mu.Unlock()

	c.tick(c.now())
}

// untilNextBoundary is the wait until the next multiple of interval on the
// local wall clock.
func untilNextBoundary(now time.Time, interval time.Duration) time.Duration {
	_, offset := now.Zone()
	local := now.Add(time.Duration(offset) * time.Second)
	next := local.Truncate(interval).Add(interval)
	return next.Sub(local)
}
