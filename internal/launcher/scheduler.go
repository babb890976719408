package launcher

import "time"

// Scheduler runs fn once after d. The returned cancel stops fn from running
// if it has not started; calling it more than once is safe.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimeScheduler schedules on Go timers. fn runs on its own goroutine, so it
// only suits callers that do their own synchronisation.
type TimeScheduler struct{}

func (TimeScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
