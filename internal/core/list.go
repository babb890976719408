package core

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/launcher"
)

const spacerHeight = 160

// listHandlers are the screen callbacks an AppList invokes. view selects
// how rows respond to taps and holds.
type listHandlers struct {
	view    launcher.View
	launch  func(row launcher.Row)
	allApps func()
	menu    func(row launcher.Row, anchor gtk.IWidget)
	scroll  func(dy float64)
}

// AppList renders presenter rows into a scrollable ListBox and turns pointer
// gestures into launches, gated launches and context menus.
type AppList struct {
	scrolled *gtk.ScrolledWindow
	list     *gtk.ListBox
	rows     []launcher.Row
	icons    *IconCache
	handlers listHandlers

	badGates  *launcher.HoldGates
	menuGates *launcher.HoldGates
	// menuShown swallows the activation that follows a hold-opened menu.
	menuShown bool
}

func NewAppList(app *App, handlers listHandlers) (*AppList, error) {
	scrolled, err := gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrolled window: %w", err)
	}
	scrolled.SetPolicy(gtk.POLICY_NEVER, gtk.POLICY_AUTOMATIC)
	scrolled.SetVExpand(true)

	list, err := gtk.ListBoxNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create app list: %w", err)
	}
	list.SetName("app-list")
	list.SetSelectionMode(gtk.SELECTION_SINGLE)
	scrolled.Add(list)

	l := &AppList{
		scrolled:  scrolled,
		list:      list,
		icons:     app.icons,
		handlers:  handlers,
		badGates:  launcher.NewHoldGates(app.scheduler, app.config.BadAppHold()),
		menuGates: launcher.NewHoldGates(app.scheduler, app.config.MenuHold()),
	}

	list.Connect("row-activated", func(_ *gtk.ListBox, row *gtk.ListBoxRow) {
		l.onRowActivated(row.GetIndex())
	})
	if handlers.scroll != nil {
		scrolled.Connect("scroll-event", func(_ *gtk.ScrolledWindow, event *gdk.Event) bool {
			handlers.scroll(scrollDelta(event))
			return false
		})
	}

	return l, nil
}

func (l *AppList) Widget() gtk.IWidget {
	return l.scrolled
}

// AtTop reports whether the list is scrolled to its first row.
func (l *AppList) AtTop() bool {
	adj := l.scrolled.GetVAdjustment()
	return adj == nil || adj.GetValue() <= adj.GetLower()
}

// FirstLaunchable returns the first row a plain tap would launch.
func (l *AppList) FirstLaunchable() (launcher.Row, bool) {
	for _, r := range l.rows {
		if l.gestures(r).Tap == launcher.TapLaunch {
			return r, true
		}
	}
	return launcher.Row{}, false
}

// SetRows replaces the list content. Pending holds are cancelled because
// their row widgets are about to be destroyed.
func (l *AppList) SetRows(rows []launcher.Row) {
	l.CancelGestures()

	children := l.list.GetChildren()
	children.Foreach(func(child interface{}) {
		if w, ok := child.(gtk.IWidget); ok {
			l.list.Remove(w)
		}
	})

	l.rows = rows
	for i, r := range rows {
		row, err := l.createRow(r)
		if err != nil {
			log.Printf("[APP-LIST] Failed to create row %d: %v", i, err)
			continue
		}
		l.list.Add(row)
	}
	l.list.ShowAll()
}

// Holding reports whether a press is waiting on its hold threshold.
func (l *AppList) Holding() bool {
	return l.badGates.Active() || l.menuGates.Active()
}

// CancelGestures drops every pending hold.
func (l *AppList) CancelGestures() {
	l.badGates.CancelAll()
	l.menuGates.CancelAll()
	l.menuShown = false
}

func (l *AppList) onRowActivated(index int) {
	if index < 0 || index >= len(l.rows) {
		return
	}
	if l.menuShown {
		l.menuShown = false
		return
	}

	r := l.rows[index]
	switch l.gestures(r).Tap {
	case launcher.TapAllApps:
		if l.handlers.allApps != nil {
			l.handlers.allApps()
		}
	case launcher.TapLaunch:
		l.handlers.launch(r)
	default:
		if r.Gated() {
			log.Printf("[APP-LIST] Ignoring tap on bad app %s", r.App.ID)
		}
	}
}

func (l *AppList) gestures(r launcher.Row) launcher.RowGestures {
	return launcher.GesturesFor(l.handlers.view, r)
}

func (l *AppList) createRow(r launcher.Row) (*gtk.ListBoxRow, error) {
	row, err := gtk.ListBoxRowNew()
	if err != nil {
		return nil, err
	}

	if r.Kind == launcher.RowSpacer {
		row.SetSizeRequest(-1, spacerHeight)
		row.SetActivatable(false)
		row.SetSelectable(false)
		return row, nil
	}

	addClass(row, "app-row")
	if r.Muted {
		addClass(row, "muted")
	}

	events, err := gtk.EventBoxNew()
	if err != nil {
		return nil, err
	}
	events.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK | gdk.LEAVE_NOTIFY_MASK))

	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 12)
	if err != nil {
		return nil, err
	}

	if l.icons != nil && r.Launchable() {
		if pixbuf, err := l.icons.Icon(r.App.Icon); err == nil {
			if image, err := gtk.ImageNewFromPixbuf(pixbuf); err == nil {
				box.PackStart(image, false, false, 0)
			}
		}
	}

	name, err := gtk.LabelNew(r.Text)
	if err != nil {
		return nil, err
	}
	name.SetHAlign(gtk.ALIGN_START)
	addClass(name, "app-name")
	box.PackStart(name, false, false, 0)

	if r.Symbol != "" {
		symbol, err := gtk.LabelNew(r.Symbol)
		if err != nil {
			return nil, err
		}
		addClass(symbol, "state-symbol")
		box.PackEnd(symbol, false, false, 0)
	}

	if r.Secondary != "" {
		secondary, err := gtk.LabelNew(r.Secondary)
		if err != nil {
			return nil, err
		}
		secondary.SetVAlign(gtk.ALIGN_BASELINE)
		addClass(secondary, "secondary")
		box.PackStart(secondary, false, false, 0)
	}

	events.Add(box)
	row.Add(events)

	if r.Launchable() {
		l.connectGestures(events, r)
	}
	return row, nil
}

func (l *AppList) connectGestures(events *gtk.EventBox, r launcher.Row) {
	id := r.App.ID

	events.Connect("button-press-event", func(w *gtk.EventBox, event *gdk.Event) bool {
		btn := gdk.EventButtonNewFromEvent(event)
		switch btn.Button() {
		case 3: // Right click
			l.handlers.menu(r, w)
			return true
		case 1: // Left click
			l.menuShown = false
			switch l.gestures(r).Hold {
			case launcher.HoldGatedLaunch:
				l.badGates.Press(id, func() { l.handlers.launch(r) })
				return true
			case launcher.HoldMenu:
				l.menuGates.Press(id, func() {
					l.menuShown = true
					l.handlers.menu(r, w)
				})
			}
		}
		return false
	})

	release := func() bool {
		l.badGates.Release(id)
		l.menuGates.Release(id)
		return false
	}
	events.Connect("button-release-event", func(_ *gtk.EventBox, _ *gdk.Event) bool {
		return release()
	})
	events.Connect("leave-notify-event", func(_ *gtk.EventBox, _ *gdk.Event) bool {
		return release()
	})
}
