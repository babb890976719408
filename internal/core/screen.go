package core

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

const (
	ScreenHome     = "home"
	ScreenDrawer   = "drawer"
	ScreenSettings = "settings"
)

// Screen is one page of the launcher window's stack.
type Screen interface {
	Name() string
	Widget() gtk.IWidget
	// Enter runs when the screen becomes visible, Leave when it stops being.
	Enter()
	Leave()
	// Refresh re-renders from the app's current snapshot.
	Refresh()
	HandleKey(event *gdk.EventKey) bool
}
