package launcher

import (
	"sort"
	"testing"
	"time"
)

// manualScheduler runs timers only when the test advances its clock.
type manualScheduler struct {
	now    time.Time
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	at time.Time
	fn func()
}

func newManualScheduler(start time.Time) *manualScheduler {
	return &manualScheduler{now: start, timers: make(map[int]*manualTimer)}
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	id := s.nextID
	s.nextID++
	s.timers[id] = &manualTimer{at: s.now.Add(d), fn: fn}
	return func() { delete(s.timers, id) }
}

func (s *manualScheduler) Now() time.Time { return s.now }

func (s *manualScheduler) Pending() int { return len(s.timers) }

// Advance moves the clock forward, firing due timers in order. Timers
// scheduled by a firing timer run too if they fall inside the window.
func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now.Add(d)
	for {
		var ids []int
		for id, t := range s.timers {
			if !t.at.After(end) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			break
		}
		sort.Slice(ids, func(i, j int) bool {
			return s.timers[ids[i]].at.Before(s.timers[ids[j]].at)
		})
		t := s.timers[ids[0]]
		delete(s.timers, ids[0])
		s.now = t.at
		t.fn()
	}
	s.now = end
}

func TestTimeScheduler(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{})
	TimeScheduler{}.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	cancelled := make(chan struct{})
	cancel := TimeScheduler{}.AfterFunc(50*time.Millisecond, func() { close(cancelled) })
	cancel()
	cancel()
	select {
	case <-cancelled:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
}
