package prefs

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

var (
	ErrBlankName   = errors.New("custom name must not be blank")
	ErrEmptyID     = errors.New("package identifier must not be empty")
	ErrUnknownKind = errors.New("unknown preferences backend")
)

// Membership is a read-only snapshot of the three exclusive state sets.
type Membership struct {
	Favorites map[string]struct{}
	Hidden    map[string]struct{}
	Bad       map[string]struct{}
}

func (m Membership) IsFavorite(id string) bool {
	_, ok := m.Favorites[id]
	return ok
}

func (m Membership) IsHidden(id string) bool {
	_, ok := m.Hidden[id]
	return ok
}

func (m Membership) IsBad(id string) bool {
	_, ok := m.Bad[id]
	return ok
}

// Settings groups the scalar preferences.
type Settings struct {
	FontSize         FontSize
	TextStyle        TextStyle
	DarkMode         bool
	StatusBarVisible bool
}

// Preferences is the typed store used by every screen. Reads are served
// from memory; writes go through the backend first and only become visible
// once the backend reports them durable.
type Preferences struct {
	mu        sync.RWMutex
	backend   Backend
	values    map[string]Value
	listeners []func(key string)
}

// Open loads the current state from backend.
func Open(backend Backend) (*Preferences, error) {
	values, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	log.Printf("[PREFS] Loaded %d preference keys", len(values))
	return &Preferences{
		backend: backend,
		values:  values,
	}, nil
}

// NewBackend builds the backend named by kind ("file", "sqlite", "memory").
func NewBackend(kind, path string) (Backend, error) {
	switch kind {
	case "file", "":
		return NewFileBackend(path)
	case "sqlite":
		return NewSQLiteBackend(path)
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func (p *Preferences) Close() error {
	return p.backend.Close()
}

// Reload re-reads the backend, picking up writes from other processes.
func (p *Preferences) Reload() error {
	values, err := p.backend.Load()
	if err != nil {
		return fmt.Errorf("failed to reload preferences: %w", err)
	}

	p.mu.Lock()
	p.values = values
	p.mu.Unlock()

	p.notify("")
	return nil
}

// OnChange registers fn to run after every successful write. key is empty
// after a Reload.
func (p *Preferences) OnChange(fn func(key string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *Preferences) notify(key string) {
	p.mu.RLock()
	listeners := append([]func(string){}, p.listeners...)
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(key)
	}
}

// update runs fn against the freshly stored values under the backend's
// write lock and adopts the stored result, which also picks up writes from
// other processes. Caller holds p.mu.
func (p *Preferences) update(fn UpdateFunc) ([]Change, error) {
	var changes []Change
	values, err := p.backend.Update(func(current map[string]Value) []Change {
		changes = fn(current)
		return changes
	})
	if err != nil {
		return nil, err
	}
	p.values = values
	return changes, nil
}

func (p *Preferences) write(changes ...Change) error {
	p.mu.Lock()
	_, err := p.update(func(map[string]Value) []Change { return changes })
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	for _, c := range changes {
		p.notify(c.Key)
	}
	return nil
}

func setOf(values map[string]Value, key string) map[string]struct{} {
	v, ok := values[key]
	out := make(map[string]struct{})
	if !ok || v.Kind != KindStringSet {
		return out
	}
	for _, m := range v.Set {
		out[m] = struct{}{}
	}
	return out
}

func (p *Preferences) setLocked(key string) map[string]struct{} {
	return setOf(p.values, key)
}

func (p *Preferences) members(key string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok || v.Kind != KindStringSet {
		return []string{}
	}
	return append([]string(nil), v.Set...)
}

func (p *Preferences) contains(key, id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.setLocked(key)[id]
	return ok
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var exclusiveSets = []string{KeyFavorites, KeyHiddenApps, KeyBadApps}

// moveTo clears id from the other two state sets and adds it to target in a
// single atomic batch computed from the stored sets.
func (p *Preferences) moveTo(target, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	p.mu.Lock()
	changes, err := p.update(func(current map[string]Value) []Change {
		var changes []Change
		for _, key := range exclusiveSets {
			set := setOf(current, key)
			_, present := set[id]
			switch {
			case key == target && !present:
				set[id] = struct{}{}
			case key != target && present:
				delete(set, id)
			default:
				continue
			}
			changes = append(changes, Put(key, SetValue(keys(set))))
		}
		return changes
	})
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	if len(changes) > 0 {
		log.Printf("[PREFS] %s now in %s", id, target)
		p.notify(target)
	}
	return nil
}

func (p *Preferences) removeFrom(key, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	p.mu.Lock()
	changes, err := p.update(func(current map[string]Value) []Change {
		set := setOf(current, key)
		if _, ok := set[id]; !ok {
			return nil
		}
		delete(set, id)
		return []Change{Put(key, SetValue(keys(set)))}
	})
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	if len(changes) > 0 {
		log.Printf("[PREFS] %s removed from %s", id, key)
		p.notify(key)
	}
	return nil
}

func (p *Preferences) Favorites() []string  { return p.members(KeyFavorites) }
func (p *Preferences) HiddenApps() []string { return p.members(KeyHiddenApps) }
func (p *Preferences) BadApps() []string    { return p.members(KeyBadApps) }

func (p *Preferences) IsFavorite(id string) bool { return p.contains(KeyFavorites, id) }
func (p *Preferences) IsHidden(id string) bool   { return p.contains(KeyHiddenApps, id) }
func (p *Preferences) IsBad(id string) bool      { return p.contains(KeyBadApps, id) }

func (p *Preferences) AddFavorite(id string) error    { return p.moveTo(KeyFavorites, id) }
func (p *Preferences) RemoveFavorite(id string) error { return p.removeFrom(KeyFavorites, id) }
func (p *Preferences) HideApp(id string) error        { return p.moveTo(KeyHiddenApps, id) }
func (p *Preferences) UnhideApp(id string) error      { return p.removeFrom(KeyHiddenApps, id) }
func (p *Preferences) MarkAsBad(id string) error      { return p.moveTo(KeyBadApps, id) }
func (p *Preferences) UnmarkBad(id string) error      { return p.removeFrom(KeyBadApps, id) }

// Membership snapshots the three state sets.
func (p *Preferences) Membership() Membership {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Membership{
		Favorites: p.setLocked(KeyFavorites),
		Hidden:    p.setLocked(KeyHiddenApps),
		Bad:       p.setLocked(KeyBadApps),
	}
}

// SetCustomName trims name and stores it. A blank name is rejected and the
// previous name, if any, is kept.
func (p *Preferences) SetCustomName(id, name string) error {
	if id == "" {
		return ErrEmptyID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	return p.write(Put(CustomNameKey(id), StringValue(name)))
}

func (p *Preferences) CustomName(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[CustomNameKey(id)]
	if !ok || v.Kind != KindString || v.Str == "" {
		return "", false
	}
	return v.Str, true
}

func (p *Preferences) ClearCustomName(id string) error {
	if _, ok := p.CustomName(id); !ok {
		return nil
	}
	return p.write(Remove(CustomNameKey(id)))
}

func (p *Preferences) stringValue(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

func (p *Preferences) boolValue(key string, def bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok || v.Kind != KindBool {
		return def
	}
	return v.Bool
}

func (p *Preferences) FontSize() FontSize {
	raw, ok := p.stringValue(KeyFontSize)
	if !ok {
		return DefaultFontSize
	}
	size, err := ParseFontSize(raw)
	if err != nil {
		log.Printf("[PREFS] %v, using %s", err, DefaultFontSize)
	}
	return size
}

func (p *Preferences) SetFontSize(size FontSize) error {
	if _, ok := fontSizeNames[size]; !ok {
		return fmt.Errorf("invalid font size %d", int(size))
	}
	return p.write(Put(KeyFontSize, StringValue(size.String())))
}

func (p *Preferences) TextStyle() TextStyle {
	raw, ok := p.stringValue(KeyTextStyle)
	if !ok {
		return DefaultTextStyle
	}
	style, err := ParseTextStyle(raw)
	if err != nil {
		log.Printf("[PREFS] %v, using %s", err, DefaultTextStyle)
	}
	return style
}

func (p *Preferences) SetTextStyle(style TextStyle) error {
	if style != AllLowercase && style != LeadingUppercase {
		return fmt.Errorf("invalid text style %d", int(style))
	}
	return p.write(Put(KeyTextStyle, StringValue(style.String())))
}

func (p *Preferences) DarkMode() bool {
	return p.boolValue(KeyDarkMode, DefaultDarkMode)
}

func (p *Preferences) SetDarkMode(dark bool) error {
	return p.write(Put(KeyDarkMode, BoolValue(dark)))
}

// ToggleTheme flips dark mode and returns the new value.
func (p *Preferences) ToggleTheme() (bool, error) {
	dark := !p.DarkMode()
	return dark, p.SetDarkMode(dark)
}

func (p *Preferences) StatusBarVisible() bool {
	return p.boolValue(KeyStatusBarVisible, DefaultStatusBarVisible)
}

func (p *Preferences) SetStatusBarVisible(visible bool) error {
	return p.write(Put(KeyStatusBarVisible, BoolValue(visible)))
}

func (p *Preferences) Settings() Settings {
	return Settings{
		FontSize:         p.FontSize(),
		TextStyle:        p.TextStyle(),
		DarkMode:         p.DarkMode(),
		StatusBarVisible: p.StatusBarVisible(),
	}
}
