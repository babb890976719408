package core

import (
	"time"

	"github.com/gotk3/gotk3/glib"
)

// mainLoopScheduler runs timers as GLib timeout sources so callbacks land on
// the GTK main loop alongside every other UI event.
type mainLoopScheduler struct{}

func (mainLoopScheduler) AfterFunc(d time.Duration, fn func()) func() {
	done := false
	handle := glib.TimeoutAdd(uint(d.Milliseconds()), func() bool {
		done = true
		fn()
		return false
	})

	return func() {
		// Removing a source that already ran triggers a GLib critical.
		if done {
			return
		}
		done = true
		glib.SourceRemove(handle)
	}
}
