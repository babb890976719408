package core

import (
	"log"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/launcher"
)

// HomeScreen lists favorites under a clock-aware header. Typing turns it
// into a search over every app that is not a favorite or hidden.
type HomeScreen struct {
	app   *App
	pane  *searchPane
	clock *launcher.ClockTicker
}

func newHomeScreen(app *App) (*HomeScreen, error) {
	h := &HomeScreen{app: app}

	handlers := listHandlers{
		view:    launcher.ViewHome,
		launch:  app.Launch,
		allApps: func() { app.ShowScreen(ScreenDrawer) },
		menu: func(row launcher.Row, anchor gtk.IWidget) {
			app.showAppMenu(h.view(), row.App, anchor)
		},
		scroll: h.onScroll,
	}

	pane, err := newSearchPane(app, "Search apps", handlers, h.Refresh, h.submit)
	if err != nil {
		return nil, err
	}
	h.pane = pane
	h.clock = launcher.NewClockTicker(app.scheduler, app.config.ClockRefresh(), h.onTick)
	return h, nil
}

func (h *HomeScreen) Name() string        { return ScreenHome }
func (h *HomeScreen) Widget() gtk.IWidget { return h.pane.box }

func (h *HomeScreen) Enter() {
	h.Refresh()
	h.pane.Focus()
}

func (h *HomeScreen) Leave() {
	h.clock.Stop()
	h.pane.Reset()
}

func (h *HomeScreen) view() launcher.View {
	if h.pane.Query() == "" {
		return launcher.ViewHome
	}
	return launcher.ViewHomeSearch
}

func (h *HomeScreen) Refresh() {
	query := h.pane.Query()
	ctx := h.app.presentContext(h.view())

	var rows []launcher.Row
	if query == "" {
		ctx.LeadingSpacer = true
		rows = launcher.Present(h.app.Snapshot(), ctx)
	} else {
		rows = launcher.Present(h.app.searcher.Filter(h.app.Snapshot(), query), ctx)
	}
	h.pane.list.SetRows(rows)

	if launcher.HasClock(rows) {
		h.clock.Start()
	} else {
		h.clock.Stop()
	}
}

func (h *HomeScreen) onTick(now time.Time) {
	// Re-rendering would drop a hold in progress; the next tick catches up.
	if h.pane.list.Holding() {
		log.Printf("[HOME] Skipping clock refresh during a hold")
		return
	}
	h.Refresh()
}

func (h *HomeScreen) submit() {
	if row, ok := h.pane.list.FirstLaunchable(); ok {
		h.app.Launch(row)
	}
}

func (h *HomeScreen) onScroll(dy float64) {
	if h.pane.Query() != "" || dy <= 0 {
		return
	}
	if h.pane.accumulateSwipe(dy, h.app.config.Gestures.SwipeThreshold) {
		h.app.ShowScreen(ScreenDrawer)
	}
}

func (h *HomeScreen) HandleKey(event *gdk.EventKey) bool {
	switch event.KeyVal() {
	case gdk.KEY_Escape:
		if h.pane.Query() != "" {
			h.pane.Reset()
			h.Refresh()
			return true
		}
		h.app.Hide()
		return true
	case gdk.KEY_Page_Down:
		if h.pane.Query() == "" {
			h.app.ShowScreen(ScreenDrawer)
			return true
		}
	}
	return false
}
