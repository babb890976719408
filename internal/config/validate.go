package config

import (
	"fmt"
	"regexp"
	"time"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (c *Config) Validate() error {
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateGestures(); err != nil {
		return err
	}
	if err := c.validateClock(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateIcons(); err != nil {
		return err
	}
	if err := c.validateStyling(); err != nil {
		return err
	}
	if err := c.validatePreferences(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWindow() error {
	w := c.Window
	if w.Width < 100 || w.Width > 8000 {
		return fmt.Errorf("invalid window width: %d (must be 100-8000)", w.Width)
	}
	if w.Height < 100 || w.Height > 8000 {
		return fmt.Errorf("invalid window height: %d (must be 100-8000)", w.Height)
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	switch s.MatchMode {
	case "prefix", "contains", "fuzzy":
	default:
		return fmt.Errorf("invalid match_mode: %q (must be prefix, contains or fuzzy)", s.MatchMode)
	}
	if s.DebounceDelay < 0 || s.DebounceDelay > 5000 {
		return fmt.Errorf("invalid debounce_delay: %d (must be 0-5000ms)", s.DebounceDelay)
	}
	if s.CacheSize < 10 || s.CacheSize > 10000 {
		return fmt.Errorf("invalid search cache_size: %d (must be 10-10000)", s.CacheSize)
	}
	if s.MinFuzzyScore < 0 {
		return fmt.Errorf("invalid min_fuzzy_score: %d (must be >= 0)", s.MinFuzzyScore)
	}
	return nil
}

func (c *Config) validateGestures() error {
	g := c.Gestures
	if g.BadAppHoldMs < 100 || g.BadAppHoldMs > 60000 {
		return fmt.Errorf("invalid bad_app_hold_ms: %d (must be 100-60000)", g.BadAppHoldMs)
	}
	if g.MenuHoldMs < 100 || g.MenuHoldMs > 5000 {
		return fmt.Errorf("invalid menu_hold_ms: %d (must be 100-5000)", g.MenuHoldMs)
	}
	if g.MenuHoldMs >= g.BadAppHoldMs {
		return fmt.Errorf("menu_hold_ms (%d) must be shorter than bad_app_hold_ms (%d)", g.MenuHoldMs, g.BadAppHoldMs)
	}
	if g.SwipeThreshold < 1 || g.SwipeThreshold > 50 {
		return fmt.Errorf("invalid swipe_threshold: %d (must be 1-50)", g.SwipeThreshold)
	}
	return nil
}

func (c *Config) validateClock() error {
	cl := c.Clock
	if cl.Format == "" {
		return fmt.Errorf("clock format must not be empty")
	}
	if cl.RefreshInterval < 1 || cl.RefreshInterval > 3600 {
		return fmt.Errorf("invalid clock refresh_interval: %d (must be 1-3600 seconds)", cl.RefreshInterval)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.AppsCacheFile == "" {
		return fmt.Errorf("apps_cache_file must not be empty when the cache is enabled")
	}
	if c.Cache.CacheMaxAgeHours < 1 || c.Cache.CacheMaxAgeHours > 168 {
		return fmt.Errorf("invalid cache_max_age_hours: %d (must be 1-168 hours)", c.Cache.CacheMaxAgeHours)
	}
	return nil
}

func (c *Config) validateIcons() error {
	i := c.Icons
	if !i.EnableIcons {
		return nil
	}
	if i.IconSize < 16 || i.IconSize > 256 {
		return fmt.Errorf("invalid icon_size: %d (must be 16-256)", i.IconSize)
	}
	if i.CacheSize < 10 || i.CacheSize > 10000 {
		return fmt.Errorf("invalid icon cache_size: %d (must be 10-10000)", i.CacheSize)
	}
	return nil
}

func (c *Config) validateStyling() error {
	for name, p := range map[string]PaletteConfig{"dark": c.Styling.Dark, "light": c.Styling.Light} {
		for field, value := range map[string]string{
			"background": p.Background,
			"foreground": p.Foreground,
			"muted":      p.Muted,
			"accent":     p.Accent,
			"divider":    p.Divider,
			"entry":      p.Entry,
		} {
			if !hexColor.MatchString(value) {
				return fmt.Errorf("invalid %s.%s color: %q", name, field, value)
			}
		}
	}
	return nil
}

func (c *Config) validatePreferences() error {
	p := c.Preferences
	switch p.Backend {
	case "memory":
		return nil
	case "file", "sqlite":
		if p.Path == "" {
			return fmt.Errorf("preferences path must not be empty for the %s backend", p.Backend)
		}
		return nil
	default:
		return fmt.Errorf("invalid preferences backend: %q (must be file, sqlite or memory)", p.Backend)
	}
}

func (c *Config) BadAppHold() time.Duration {
	return time.Duration(c.Gestures.BadAppHoldMs) * time.Millisecond
}

func (c *Config) MenuHold() time.Duration {
	return time.Duration(c.Gestures.MenuHoldMs) * time.Millisecond
}

func (c *Config) ClockRefresh() time.Duration {
	return time.Duration(c.Clock.RefreshInterval) * time.Second
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceDelay) * time.Millisecond
}
