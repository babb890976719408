package core

import (
	"fmt"
	"log"
	"os"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

const stylesTemplate = `
* {
    font-family: %[1]s;
    font-weight: %[2]s;
    transition: opacity 0.2s ease;
}

window, #main-stack, box, list, row, scrolledwindow, viewport {
    background-color: %[3]s;
}

label {
    color: %[4]s;
}

#search-entry {
    background-color: %[8]s;
    color: %[4]s;
    padding: 12px;
    border: none;
    border-bottom: 1px solid %[7]s;
    box-shadow: none;
}

#search-entry:focus {
    border-bottom: 1px solid %[6]s;
}

.app-row {
    padding: 6px 24px;
}

.app-row label.app-name {
    font-size: %[9]dpx;
}

.app-row.muted label.app-name {
    color: %[5]s;
}

.app-row label.secondary {
    font-size: %[10]dpx;
    color: %[5]s;
}

.app-row:selected, .app-row:hover {
    background-color: %[7]s;
}

.settings-section label {
    font-size: 16px;
}

.toast {
    background-color: %[4]s;
    border-radius: 16px;
    padding: 8px 16px;
    margin-bottom: 32px;
}

.toast label {
    color: %[3]s;
}
`

// ThemeCSS renders the stylesheet for a palette and the user's font size.
func ThemeCSS(styling config.StylingConfig, dark bool, size prefs.FontSize) string {
	p := styling.Light
	if dark {
		p = styling.Dark
	}
	px := size.Pixels()
	return fmt.Sprintf(stylesTemplate,
		styling.FontFamily, styling.FontWeight,
		p.Background, p.Foreground, p.Muted, p.Accent, p.Divider, p.Entry,
		px, px/2,
	)
}

// Styles owns the application stylesheet and swaps it when the theme or
// font size changes.
type Styles struct {
	styling  config.StylingConfig
	screen   *gdk.Screen
	provider *gtk.CssProvider
}

func NewStyles(styling config.StylingConfig) (*Styles, error) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		return nil, fmt.Errorf("failed to get default screen: %w", err)
	}

	provider, err := gtk.CssProviderNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create css provider: %w", err)
	}
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)

	s := &Styles{styling: styling, screen: screen, provider: provider}
	if styling.CustomCSS != "" {
		s.loadCustomCSS(styling.CustomCSS)
	}
	return s, nil
}

// Apply reloads the stylesheet for the current settings.
func (s *Styles) Apply(settings prefs.Settings) {
	css := ThemeCSS(s.styling, settings.DarkMode, settings.FontSize)
	if err := s.provider.LoadFromData(css); err != nil {
		log.Printf("[STYLES] Warning: Failed to load styles: %v", err)
		return
	}

	if gs, err := gtk.SettingsGetDefault(); err == nil {
		gs.SetProperty("gtk-application-prefer-dark-theme", settings.DarkMode)
	}
	log.Printf("[STYLES] Applied dark=%v font=%s", settings.DarkMode, settings.FontSize)
}

func (s *Styles) loadCustomCSS(path string) {
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		log.Printf("[STYLES] Warning: Failed to read custom css: %v", err)
		return
	}

	provider, err := gtk.CssProviderNew()
	if err != nil {
		return
	}
	if err := provider.LoadFromData(string(data)); err != nil {
		log.Printf("[STYLES] Warning: Failed to load custom css: %v", err)
		return
	}
	gtk.AddProviderForScreen(s.screen, provider, gtk.STYLE_PROVIDER_PRIORITY_USER)
}

func addClass(w interface {
	GetStyleContext() (*gtk.StyleContext, error)
}, classes ...string) {
	ctx, err := w.GetStyleContext()
	if err != nil {
		return
	}
	for _, c := range classes {
		ctx.AddClass(c)
	}
}
