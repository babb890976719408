package core

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chess10kp/cleanlauncher/internal/config"
)

// IconCache keeps recently drawn app icons. It is only used from the GTK
// main loop.
type IconCache struct {
	cache    *lru.Cache[string, *gdk.Pixbuf]
	theme    *gtk.IconTheme
	size     int
	fallback string
}

func NewIconCache(cfg config.IconsConfig) (*IconCache, error) {
	maxSize := cfg.CacheSize
	if maxSize <= 0 {
		maxSize = 200
	}

	cache, err := lru.New[string, *gdk.Pixbuf](maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon cache: %w", err)
	}

	iconTheme, err := gtk.IconThemeGetDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to get default icon theme: %w", err)
	}

	fallback := cfg.FallbackIcon
	if fallback == "" {
		fallback = "image-missing"
	}

	return &IconCache{
		cache:    cache,
		theme:    iconTheme,
		size:     cfg.IconSize,
		fallback: fallback,
	}, nil
}

// Icon returns the pixbuf for a desktop-entry Icon value, which is either a
// theme name or an absolute path.
func (ic *IconCache) Icon(name string) (*gdk.Pixbuf, error) {
	if name == "" {
		name = ic.fallback
	}

	if pixbuf, ok := ic.cache.Get(name); ok {
		return pixbuf, nil
	}

	pixbuf, err := ic.load(name)
	if err != nil {
		if name == ic.fallback {
			return nil, err
		}
		log.Printf("[ICON-CACHE] Failed to load '%s' (%v), trying fallback '%s'", name, err, ic.fallback)
		pixbuf, err = ic.Icon(ic.fallback)
		if err != nil {
			return nil, err
		}
	}

	ic.cache.Add(name, pixbuf)
	return pixbuf, nil
}

func (ic *IconCache) load(name string) (*gdk.Pixbuf, error) {
	if filepath.IsAbs(name) {
		return gdk.PixbufNewFromFileAtSize(name, ic.size, ic.size)
	}
	if !ic.theme.HasIcon(name) {
		return nil, fmt.Errorf("icon '%s' not found in theme", name)
	}
	return ic.theme.LoadIcon(name, ic.size, gtk.ICON_LOOKUP_USE_BUILTIN)
}

// Clear drops every cached icon, e.g. after the icon theme changes.
func (ic *IconCache) Clear() {
	ic.cache.Purge()
}
