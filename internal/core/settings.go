package core

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/launcher"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

// SettingsScreen holds the display preferences and the full app list with
// a state indicator per row.
type SettingsScreen struct {
	app  *App
	box  *gtk.Box
	list *AppList

	fontSize  *gtk.ComboBoxText
	textStyle *gtk.ComboBoxText
	darkMode  *gtk.Switch
	statusBar *gtk.Switch

	// syncing suppresses change handlers while controls mirror the store.
	syncing bool
}

func newSettingsScreen(app *App) (*SettingsScreen, error) {
	s := &SettingsScreen{app: app}

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 8)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings box: %w", err)
	}
	s.box = box

	grid, err := gtk.GridNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create settings grid: %w", err)
	}
	grid.SetRowSpacing(8)
	grid.SetColumnSpacing(16)
	grid.SetMarginStart(12)
	grid.SetMarginEnd(12)
	grid.SetMarginTop(12)

	if s.fontSize, err = gtk.ComboBoxTextNew(); err != nil {
		return nil, fmt.Errorf("failed to create font size combo: %w", err)
	}
	for _, size := range prefs.FontSizes() {
		s.fontSize.Append(size.String(), size.Label())
	}

	if s.textStyle, err = gtk.ComboBoxTextNew(); err != nil {
		return nil, fmt.Errorf("failed to create text style combo: %w", err)
	}
	s.textStyle.Append(prefs.AllLowercase.String(), "all lowercase")
	s.textStyle.Append(prefs.LeadingUppercase.String(), "Leading uppercase")

	if s.darkMode, err = gtk.SwitchNew(); err != nil {
		return nil, fmt.Errorf("failed to create dark mode switch: %w", err)
	}
	if s.statusBar, err = gtk.SwitchNew(); err != nil {
		return nil, fmt.Errorf("failed to create status bar switch: %w", err)
	}

	controls := []struct {
		label  string
		widget gtk.IWidget
	}{
		{"Font size", s.fontSize},
		{"Text style", s.textStyle},
		{"Dark mode", s.darkMode},
		{"Show status bar", s.statusBar},
	}
	for i, c := range controls {
		label, err := gtk.LabelNew(c.label)
		if err != nil {
			return nil, fmt.Errorf("failed to create label: %w", err)
		}
		label.SetHAlign(gtk.ALIGN_START)
		label.SetHExpand(true)
		grid.Attach(label, 0, i, 1, 1)
		grid.Attach(c.widget, 1, i, 1, 1)
	}
	s.statusBar.SetSensitive(app.sway.Available())
	box.PackStart(grid, false, false, 0)

	heading, err := gtk.LabelNew("Apps")
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	heading.SetHAlign(gtk.ALIGN_START)
	heading.SetMarginStart(12)
	addClass(heading, "secondary")
	box.PackStart(heading, false, false, 0)

	list, err := NewAppList(app, listHandlers{
		view: launcher.ViewSettings,
		menu: func(row launcher.Row, anchor gtk.IWidget) {
			app.showAppMenu(launcher.ViewSettings, row.App, anchor)
		},
	})
	if err != nil {
		return nil, err
	}
	s.list = list
	box.PackStart(list.Widget(), true, true, 0)

	s.connectControls()
	return s, nil
}

func (s *SettingsScreen) connectControls() {
	store := s.app.prefs

	s.fontSize.Connect("changed", func() {
		if s.syncing {
			return
		}
		size, err := prefs.ParseFontSize(s.fontSize.GetActiveID())
		if err != nil {
			return
		}
		s.save("font size", store.SetFontSize(size))
	})
	s.textStyle.Connect("changed", func() {
		if s.syncing {
			return
		}
		style, err := prefs.ParseTextStyle(s.textStyle.GetActiveID())
		if err != nil {
			return
		}
		s.save("text style", store.SetTextStyle(style))
	})
	s.darkMode.Connect("notify::active", func() {
		if s.syncing {
			return
		}
		s.save("dark mode", store.SetDarkMode(s.darkMode.GetActive()))
	})
	s.statusBar.Connect("notify::active", func() {
		if s.syncing {
			return
		}
		s.save("status bar", store.SetStatusBarVisible(s.statusBar.GetActive()))
	})
}

func (s *SettingsScreen) save(what string, err error) {
	if err == nil {
		return
	}
	log.Printf("[SETTINGS] Failed to save %s: %v", what, err)
	s.app.toast.Show("Could not save change")
	s.syncControls()
}

func (s *SettingsScreen) syncControls() {
	settings := s.app.prefs.Settings()

	s.syncing = true
	defer func() { s.syncing = false }()

	s.fontSize.SetActiveID(settings.FontSize.String())
	s.textStyle.SetActiveID(settings.TextStyle.String())
	s.darkMode.SetActive(settings.DarkMode)
	s.statusBar.SetActive(settings.StatusBarVisible)
}

func (s *SettingsScreen) Name() string        { return ScreenSettings }
func (s *SettingsScreen) Widget() gtk.IWidget { return s.box }

func (s *SettingsScreen) Enter() {
	s.Refresh()
	s.fontSize.GrabFocus()
}

func (s *SettingsScreen) Leave() {
	s.list.CancelGestures()
}

func (s *SettingsScreen) Refresh() {
	s.syncControls()
	ctx := s.app.presentContext(launcher.ViewSettings)
	ctx.ShowState = true
	s.list.SetRows(launcher.Present(s.app.Snapshot(), ctx))
}

func (s *SettingsScreen) HandleKey(event *gdk.EventKey) bool {
	if event.KeyVal() == gdk.KEY_Escape {
		s.app.ShowScreen(ScreenHome)
		return true
	}
	return false
}
