package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unsafe"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/apps"
	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/launcher"
	"github.com/chess10kp/cleanlauncher/internal/layer"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
	"github.com/chess10kp/cleanlauncher/internal/sway"
)

const barCommandTimeout = 3 * time.Second

// App is the launcher process: one window holding the home, drawer and
// settings screens, driven from the GTK main loop.
type App struct {
	config    *config.Config
	prefs     *prefs.Preferences
	registry  *apps.DesktopRegistry
	catalog   *apps.Catalog
	sway      *sway.Controller
	searcher  *launcher.Searcher
	scheduler launcher.Scheduler

	running bool
	sigChan chan os.Signal
	ipc     *IPCServer

	icons  *IconCache
	styles *Styles
	toast  *Toast

	window  *gtk.Window
	stack   *gtk.Stack
	screens map[string]Screen
	current Screen

	snapshot []apps.AppRecord
}

// NewApp wires the non-GTK services. Widgets are built in Run once GTK is
// initialized.
func NewApp(cfg *config.Config, store *prefs.Preferences) (*App, error) {
	mode, err := launcher.ParseMatchMode(cfg.Search.MatchMode)
	if err != nil {
		return nil, err
	}
	cache, err := launcher.NewSearchCache(cfg.Search.CacheSize)
	if err != nil {
		return nil, err
	}

	swayCtl := sway.New(cfg.Sway)
	var spawner apps.Spawner = apps.ProcessSpawner{}
	if cfg.Sway.LaunchWithExec && swayCtl.Available() {
		spawner = apps.FallbackSpawner{Primary: swayCtl, Secondary: apps.ProcessSpawner{}}
	}

	registry := apps.NewDesktopRegistry(apps.NewAppLoader(cfg))
	catalog := apps.NewCatalog(registry, store, spawner)
	if activator, err := apps.NewDBusActivator(); err != nil {
		log.Printf("D-Bus activation unavailable: %v", err)
	} else {
		catalog.SetActivator(activator)
	}

	return &App{
		config:   cfg,
		prefs:    store,
		registry: registry,
		catalog:  catalog,
		sway:     swayCtl,
		searcher: &launcher.Searcher{
			Mode:          mode,
			MinFuzzyScore: cfg.Search.MinFuzzyScore,
			Cache:         cache,
		},
		scheduler: mainLoopScheduler{},
		sigChan:   make(chan os.Signal, 1),
		screens:   make(map[string]Screen),
	}, nil
}

// Run starts the application and blocks until Quit.
func (a *App) Run() error {
	a.running = true

	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-a.sigChan
		log.Printf("Received signal: %v", sig)
		glib.IdleAdd(a.Quit)
	}()

	log.Println("cleanlauncher starting...")

	if err := a.initialize(); err != nil {
		return err
	}

	gtk.Main()
	return nil
}

func (a *App) initialize() error {
	log.Println("Initializing components...")

	gtk.Init(nil)

	styles, err := NewStyles(a.config.Styling)
	if err != nil {
		return fmt.Errorf("failed to set up styles: %w", err)
	}
	a.styles = styles

	if a.config.Icons.EnableIcons {
		icons, err := NewIconCache(a.config.Icons)
		if err != nil {
			log.Printf("Failed to create icon cache: %v", err)
		} else {
			a.icons = icons
		}
	}

	if err := a.createWindow(); err != nil {
		return err
	}

	a.prefs.OnChange(a.onPrefsChanged)
	settings := a.prefs.Settings()
	a.styles.Apply(settings)
	a.applyStatusBar(settings.StatusBarVisible)

	ipc := NewIPCServer(a, a.config)
	if err := ipc.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
	} else {
		a.ipc = ipc
	}

	a.Present(ScreenHome)
	log.Println("Initialization complete")
	return nil
}

func (a *App) createWindow() error {
	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.SetTitle(a.config.AppName)
	window.SetDefaultSize(a.config.Window.Width, a.config.Window.Height)
	window.SetDecorated(a.config.Window.Decorated)
	a.window = window

	toast, err := NewToast(a.scheduler)
	if err != nil {
		return err
	}
	a.toast = toast

	stack, err := gtk.StackNew()
	if err != nil {
		return fmt.Errorf("failed to create stack: %w", err)
	}
	stack.SetTransitionType(gtk.STACK_TRANSITION_TYPE_SLIDE_UP_DOWN)
	a.stack = stack

	home, err := newHomeScreen(a)
	if err != nil {
		return fmt.Errorf("failed to create home screen: %w", err)
	}
	drawer, err := newDrawerScreen(a)
	if err != nil {
		return fmt.Errorf("failed to create drawer screen: %w", err)
	}
	settings, err := newSettingsScreen(a)
	if err != nil {
		return fmt.Errorf("failed to create settings screen: %w", err)
	}
	for _, screen := range []Screen{home, drawer, settings} {
		a.screens[screen.Name()] = screen
		stack.AddNamed(screen.Widget(), screen.Name())
	}

	overlay, err := gtk.OverlayNew()
	if err != nil {
		return fmt.Errorf("failed to create overlay: %w", err)
	}
	overlay.Add(stack)
	overlay.AddOverlay(toast.Widget())
	window.Add(overlay)

	window.Connect("key-press-event", func(_ *gtk.Window, event *gdk.Event) bool {
		key := gdk.EventKeyNewFromEvent(event)
		if key.State()&uint(gdk.CONTROL_MASK) != 0 && key.KeyVal() == gdk.KEY_t {
			a.toggleTheme()
			return true
		}
		if a.current == nil {
			return false
		}
		return a.current.HandleKey(key)
	})
	window.Connect("delete-event", func(_ *gtk.Window, _ *gdk.Event) bool {
		a.Hide()
		return true
	})

	if a.config.Window.LayerShell && layer.IsSupported() {
		a.setupLayerShell()
	} else if a.config.Window.Fullscreen {
		window.Fullscreen()
	}
	return nil
}

func (a *App) setupLayerShell() {
	log.Printf("Initializing layer shell")
	w := unsafe.Pointer(a.window.Native())
	layer.InitForWindow(w)
	layer.SetNamespace(w, a.config.AppID)
	layer.SetLayer(w, layer.LayerTop)
	layer.SetKeyboardMode(w, layer.KeyboardModeOnDemand)
	if a.config.Window.Fullscreen {
		for _, edge := range []layer.Edge{layer.EdgeLeft, layer.EdgeRight, layer.EdgeTop, layer.EdgeBottom} {
			layer.SetAnchor(w, edge, true)
		}
	}
	layer.SetExclusiveZone(w, 0)
}

// Snapshot is the app list the screens render and search. It is refreshed
// whenever the window is presented, preferences change or on Reload.
func (a *App) Snapshot() []apps.AppRecord {
	return a.snapshot
}

func (a *App) refreshSnapshot() {
	records, err := a.catalog.ListInstalledApps()
	if err != nil {
		log.Printf("Failed to list apps, keeping previous list: %v", err)
		return
	}
	a.snapshot = records
}

func (a *App) presentContext(view launcher.View) launcher.PresentContext {
	settings := a.prefs.Settings()
	return launcher.PresentContext{
		View:        view,
		FontSize:    settings.FontSize,
		TextStyle:   settings.TextStyle,
		ClockIDs:    a.config.Clock.Packages,
		ClockFormat: a.config.Clock.Format,
		Now:         time.Now(),
	}
}

// ShowScreen switches the stack to name.
func (a *App) ShowScreen(name string) {
	screen, ok := a.screens[name]
	if !ok {
		log.Printf("Unknown screen: %s", name)
		return
	}
	if a.current != nil && a.current != screen {
		a.current.Leave()
	}
	a.current = screen
	a.stack.SetVisibleChildName(name)
	screen.Enter()
}

// Present shows the window on the named screen with a fresh app list.
func (a *App) Present(name string) {
	a.refreshSnapshot()
	a.window.ShowAll()
	a.ShowScreen(name)
	a.window.Present()
}

func (a *App) Hide() {
	if a.current != nil {
		a.current.Leave()
	}
	a.window.Hide()
}

func (a *App) Toggle() {
	if a.window.IsVisible() {
		a.Hide()
		return
	}
	a.Present(ScreenHome)
}

// Reload rescans application directories and re-reads preferences written
// by other processes.
func (a *App) Reload() {
	if _, err := a.registry.Rescan(); err != nil {
		log.Printf("Failed to rescan apps: %v", err)
	}
	a.searcher.Cache.Invalidate()
	if a.icons != nil {
		a.icons.Clear()
	}
	if err := a.prefs.Reload(); err != nil {
		log.Printf("Failed to reload preferences: %v", err)
		a.refresh()
	}
}

func (a *App) refresh() {
	a.refreshSnapshot()
	if a.current != nil && a.window.IsVisible() {
		a.current.Refresh()
	}
}

func (a *App) onPrefsChanged(key string) {
	settings := a.prefs.Settings()
	switch key {
	case "":
		a.styles.Apply(settings)
		a.applyStatusBar(settings.StatusBarVisible)
	case prefs.KeyFontSize, prefs.KeyDarkMode:
		a.styles.Apply(settings)
	case prefs.KeyStatusBarVisible:
		a.applyStatusBar(settings.StatusBarVisible)
	}
	a.refresh()
}

func (a *App) toggleTheme() {
	if _, err := a.prefs.ToggleTheme(); err != nil {
		log.Printf("Failed to toggle theme: %v", err)
		a.toast.Show("Could not save change")
	}
}

func (a *App) applyStatusBar(visible bool) {
	if !a.sway.Available() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), barCommandTimeout)
		defer cancel()
		if err := a.sway.SetBarVisible(ctx, visible); err != nil {
			log.Printf("Failed to set bar visibility: %v", err)
		}
	}()
}

// Launch starts the app behind row. Gated rows only get here once their
// hold completes.
func (a *App) Launch(row launcher.Row) {
	rec := row.App
	launched, err := a.catalog.Launch(rec.ID)
	switch {
	case err != nil:
		log.Printf("Failed to launch %s: %v", rec.ID, err)
		a.toast.Show(fmt.Sprintf("Could not open %s", rec.DisplayName()))
		return
	case !launched:
		a.toast.Show(fmt.Sprintf("%s is no longer installed", rec.DisplayName()))
		a.refresh()
		return
	}

	if a.config.Window.HideOnLaunch {
		a.Hide()
		return
	}
	a.ShowScreen(ScreenHome)
}

// Quit gracefully quits the application. It must run on the main loop.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	if a.current != nil {
		a.current.Leave()
	}
	if a.ipc != nil {
		a.ipc.Stop()
	}

	gtk.MainQuit()
}
