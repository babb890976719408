package core

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/launcher"
)

// DrawerScreen lists every app that is neither a favorite, hidden nor bad.
type DrawerScreen struct {
	app  *App
	pane *searchPane
}

func newDrawerScreen(app *App) (*DrawerScreen, error) {
	d := &DrawerScreen{app: app}

	handlers := listHandlers{
		view:   launcher.ViewDrawer,
		launch: app.Launch,
		menu: func(row launcher.Row, anchor gtk.IWidget) {
			app.showAppMenu(launcher.ViewDrawer, row.App, anchor)
		},
		scroll: d.onScroll,
	}

	pane, err := newSearchPane(app, "Search all apps", handlers, d.Refresh, d.submit)
	if err != nil {
		return nil, err
	}
	d.pane = pane
	return d, nil
}

func (d *DrawerScreen) Name() string        { return ScreenDrawer }
func (d *DrawerScreen) Widget() gtk.IWidget { return d.pane.box }

func (d *DrawerScreen) Enter() {
	d.Refresh()
	d.pane.Focus()
}

func (d *DrawerScreen) Leave() {
	d.pane.Reset()
}

func (d *DrawerScreen) Refresh() {
	records := d.app.Snapshot()
	if query := d.pane.Query(); query != "" {
		records = d.app.searcher.Filter(records, query)
	}
	d.pane.list.SetRows(launcher.Present(records, d.app.presentContext(launcher.ViewDrawer)))
}

func (d *DrawerScreen) submit() {
	if row, ok := d.pane.list.FirstLaunchable(); ok {
		d.app.Launch(row)
	}
}

// onScroll returns home when the user keeps scrolling up past the top.
func (d *DrawerScreen) onScroll(dy float64) {
	if dy >= 0 || !d.pane.list.AtTop() {
		return
	}
	if d.pane.accumulateSwipe(dy, d.app.config.Gestures.SwipeThreshold) {
		d.app.ShowScreen(ScreenHome)
	}
}

func (d *DrawerScreen) HandleKey(event *gdk.EventKey) bool {
	switch event.KeyVal() {
	case gdk.KEY_Escape:
		if d.pane.Query() != "" {
			d.pane.Reset()
			d.Refresh()
			return true
		}
		d.app.ShowScreen(ScreenHome)
		return true
	case gdk.KEY_Page_Up:
		if d.pane.list.AtTop() {
			d.app.ShowScreen(ScreenHome)
			return true
		}
	}
	return false
}
