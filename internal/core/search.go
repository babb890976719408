package core

import (
	"fmt"
	"strings"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// searchPane is a search entry stacked over an AppList. Typing re-renders
// after the configured debounce, from the screen's cached snapshot.
type searchPane struct {
	box    *gtk.Box
	entry  *gtk.Entry
	list   *AppList
	cancel func()

	swipe float64
}

func newSearchPane(app *App, placeholder string, handlers listHandlers, onQuery func(), onSubmit func()) (*searchPane, error) {
	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}

	entry, err := gtk.EntryNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create search entry: %w", err)
	}
	entry.SetPlaceholderText(placeholder)
	entry.SetName("search-entry")
	box.PackStart(entry, false, false, 0)

	list, err := NewAppList(app, handlers)
	if err != nil {
		return nil, err
	}
	box.PackStart(list.Widget(), true, true, 0)

	p := &searchPane{box: box, entry: entry, list: list}

	entry.Connect("changed", func() {
		if p.cancel != nil {
			p.cancel()
		}
		p.cancel = app.scheduler.AfterFunc(app.config.Debounce(), func() {
			p.cancel = nil
			onQuery()
		})
	})
	entry.Connect("activate", func() {
		onSubmit()
	})

	return p, nil
}

// Query is the trimmed search text.
func (p *searchPane) Query() string {
	text, _ := p.entry.GetText()
	return strings.TrimSpace(text)
}

// Reset clears the search without waiting for the debounce.
func (p *searchPane) Reset() {
	p.entry.SetText("")
	// SetText emits "changed" synchronously; drop the debounce it scheduled.
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.swipe = 0
	p.list.CancelGestures()
}

func (p *searchPane) Focus() {
	p.entry.GrabFocus()
}

// accumulateSwipe adds a scroll delta and reports true once the total
// passes threshold in the delta's direction.
func (p *searchPane) accumulateSwipe(dy float64, threshold int) bool {
	if (dy > 0) != (p.swipe > 0) {
		p.swipe = 0
	}
	p.swipe += dy
	if p.swipe >= float64(threshold) || p.swipe <= -float64(threshold) {
		p.swipe = 0
		return true
	}
	return false
}

// scrollDelta converts a scroll event into a vertical delta, positive when
// the content would move up.
func scrollDelta(event *gdk.Event) float64 {
	scroll := gdk.EventScrollNewFromEvent(event)
	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		return -1
	case gdk.SCROLL_DOWN:
		return 1
	case gdk.SCROLL_SMOOTH:
		return scroll.DeltaY()
	default:
		return 0
	}
}
