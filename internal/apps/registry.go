package apps

import (
	"fmt"
	"log"
	"sync"
)

// Registry is the platform's list of launchable apps.
type Registry interface {
	LaunchableApps() ([]Entry, error)
	LaunchAction(id string) (Action, bool)
}

// DesktopRegistry serves .desktop entries through an AppLoader.
type DesktopRegistry struct {
	loader *AppLoader
	mu     sync.RWMutex
	byID   map[string]Entry
}

func NewDesktopRegistry(loader *AppLoader) *DesktopRegistry {
	return &DesktopRegistry{
		loader: loader,
		byID:   make(map[string]Entry),
	}
}

// LaunchableApps returns the current entries, loading through the cache.
func (r *DesktopRegistry) LaunchableApps() ([]Entry, error) {
	return r.load(false)
}

// Rescan bypasses the cache and rereads every application directory.
func (r *DesktopRegistry) Rescan() ([]Entry, error) {
	return r.load(true)
}

func (r *DesktopRegistry) load(force bool) ([]Entry, error) {
	entries, err := r.loader.LoadApps(force)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	r.mu.Lock()
	r.byID = byID
	r.mu.Unlock()
	return entries, nil
}

// LaunchAction returns false for ids that are not installed or whose Exec
// line cannot be parsed.
func (r *DesktopRegistry) LaunchAction(id string) (Action, bool) {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		if _, err := r.load(false); err != nil {
			log.Printf("[APPS] %v", err)
			return Action{}, false
		}
		r.mu.RLock()
		e, ok = r.byID[id]
		r.mu.RUnlock()
		if !ok {
			return Action{}, false
		}
	}

	action := Action{ID: id, Terminal: e.Terminal}
	if e.DBusActivatable {
		action.DBusName = id
	}
	if e.Exec == "" && action.DBusName != "" {
		return action, true
	}

	argv, err := ParseExec(e.Exec)
	if err != nil {
		log.Printf("[APPS] No launch action for %s: %v", id, err)
		return Action{}, false
	}
	action.Argv = argv
	return action, true
}
