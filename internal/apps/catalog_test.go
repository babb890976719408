package apps

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

type fakeRegistry struct {
	entries []Entry
	err     error
	calls   int
}

func (r *fakeRegistry) LaunchableApps() ([]Entry, error) {
	r.calls++
	return r.entries, r.err
}

func (r *fakeRegistry) LaunchAction(id string) (Action, bool) {
	for _, e := range r.entries {
		if e.ID == id {
			argv, err := ParseExec(e.Exec)
			if err != nil {
				return Action{}, false
			}
			return Action{ID: id, Argv: argv}, true
		}
	}
	return Action{}, false
}

type recordingSpawner struct {
	spawned [][]string
}

func (s *recordingSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return nil
}

func newTestPrefs(t *testing.T) *prefs.Preferences {
	t.Helper()
	p, err := prefs.Open(prefs.NewMemoryBackend())
	if err != nil {
		t.Fatalf("Failed to open preferences: %v", err)
	}
	return p
}

func TestResolveState_Precedence(t *testing.T) {
	set := func(ids ...string) map[string]struct{} {
		m := make(map[string]struct{})
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}

	m := prefs.Membership{
		Favorites: set("fav", "fav+bad", "fav+hidden"),
		Hidden:    set("hidden", "fav+hidden", "hidden+bad"),
		Bad:       set("bad", "fav+bad", "hidden+bad"),
	}

	tests := map[string]State{
		"fav":        StateFavorite,
		"hidden":     StateHidden,
		"bad":        StateBad,
		"fav+bad":    StateBad,
		"fav+hidden": StateFavorite,
		"hidden+bad": StateBad,
		"unknown":    StateNeither,
	}

	for id, want := range tests {
		if got := ResolveState(m, id); got != want {
			t.Errorf("ResolveState(%s) = %s, expected %s", id, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	rec := AppRecord{ID: "org.gnome.Calculator", Label: "Calculator"}
	if rec.DisplayName() != "Calculator" {
		t.Errorf("Expected label, got %s", rec.DisplayName())
	}

	renamed := rec.WithCustomName("calc")
	if renamed.DisplayName() != "calc" {
		t.Errorf("Expected custom name, got %s", renamed.DisplayName())
	}
	if rec.CustomName != "" {
		t.Error("Expected WithCustomName to leave the original untouched")
	}
}

func TestListInstalledApps(t *testing.T) {
	registry := &fakeRegistry{entries: []Entry{
		{ID: "maps", Name: "Maps", Exec: "maps"},
		{ID: "alarm", Name: "alarm", Exec: "alarm"},
		{ID: "camera", Name: "Camera", Exec: "camera"},
		{ID: "zoo", Name: "Zoo", Exec: "zoo"},
	}}
	p := newTestPrefs(t)
	if err := p.AddFavorite("maps"); err != nil {
		t.Fatalf("Failed to add favorite: %v", err)
	}
	if err := p.MarkAsBad("camera"); err != nil {
		t.Fatalf("Failed to mark bad: %v", err)
	}
	if err := p.SetCustomName("zoo", "Browser"); err != nil {
		t.Fatalf("Failed to rename: %v", err)
	}

	catalog := NewCatalog(registry, p, nil)
	records, err := catalog.ListInstalledApps()
	if err != nil {
		t.Fatalf("Failed to list apps: %v", err)
	}

	var names []string
	states := make(map[string]State)
	for _, r := range records {
		names = append(names, r.DisplayName())
		states[r.ID] = r.State
	}

	wantNames := []string{"alarm", "Browser", "Camera", "Maps"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("Expected %v, got %v", wantNames, names)
	}
	if states["maps"] != StateFavorite || states["camera"] != StateBad || states["alarm"] != StateNeither {
		t.Errorf("Unexpected states: %v", states)
	}

	// Each call re-queries the registry.
	if _, err := catalog.ListInstalledApps(); err != nil {
		t.Fatalf("Failed to list apps: %v", err)
	}
	if registry.calls != 2 {
		t.Errorf("Expected 2 registry queries, got %d", registry.calls)
	}
}

func TestListInstalledApps_RegistryError(t *testing.T) {
	boom := errors.New("boom")
	catalog := NewCatalog(&fakeRegistry{err: boom}, newTestPrefs(t), nil)

	if _, err := catalog.ListInstalledApps(); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped registry error, got %v", err)
	}
}

func TestLaunch(t *testing.T) {
	registry := &fakeRegistry{entries: []Entry{
		{ID: "firefox", Name: "Firefox", Exec: "firefox %u"},
	}}
	spawner := &recordingSpawner{}
	catalog := NewCatalog(registry, newTestPrefs(t), spawner)

	launched, err := catalog.Launch("firefox")
	if err != nil || !launched {
		t.Fatalf("Expected launch, got %v %v", launched, err)
	}
	if !reflect.DeepEqual(spawner.spawned, [][]string{{"firefox"}}) {
		t.Errorf("Expected [[firefox]], got %v", spawner.spawned)
	}

	launched, err = catalog.Launch("missing")
	if err != nil || launched {
		t.Errorf("Expected silent no-op for unknown id, got %v %v", launched, err)
	}
	if len(spawner.spawned) != 1 {
		t.Errorf("Expected no extra spawn, got %v", spawner.spawned)
	}
}

func TestParseExec(t *testing.T) {
	tests := []struct {
		exec string
		want []string
	}{
		{"firefox %u", []string{"firefox"}},
		{`env FOO=1 "/opt/My App/app" --flag %F`, []string{"env", "FOO=1", "/opt/My App/app", "--flag"}},
		{`sh -c "echo 100%%"`, []string{"sh", "-c", "echo 100%"}},
		{`app arg\ with\ spaces`, []string{"app", "arg with spaces"}},
		{"browser --url=%u --name=%c", []string{"browser", "--url=", "--name="}},
		{`viewer "--open %f" %i%k`, []string{"viewer", "--open "}},
		{"calc 50%%u", []string{"calc", "50%u"}},
		{`app ""`, []string{"app", ""}},
	}

	for _, tt := range tests {
		got, err := ParseExec(tt.exec)
		if err != nil {
			t.Errorf("ParseExec(%q) failed: %v", tt.exec, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseExec(%q) = %q, expected %q", tt.exec, got, tt.want)
		}
	}

	if _, err := ParseExec(`"unterminated`); err == nil {
		t.Error("Expected error for unterminated quote")
	}
	if _, err := ParseExec("%u"); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

type failingSpawner struct{ calls int }

func (s *failingSpawner) Spawn(argv []string) error {
	s.calls++
	return errors.New("unavailable")
}

func TestFallbackSpawner(t *testing.T) {
	primary := &failingSpawner{}
	secondary := &recordingSpawner{}
	spawner := FallbackSpawner{Primary: primary, Secondary: secondary}

	if err := spawner.Spawn([]string{"foot"}); err != nil {
		t.Fatalf("Expected fallback to succeed, got %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("Expected primary to be tried once, got %d", primary.calls)
	}
	if !reflect.DeepEqual(secondary.spawned, [][]string{{"foot"}}) {
		t.Errorf("Expected [[foot]] on secondary, got %v", secondary.spawned)
	}

	ok := &recordingSpawner{}
	unused := &recordingSpawner{}
	if err := (FallbackSpawner{Primary: ok, Secondary: unused}).Spawn([]string{"foot"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(unused.spawned) != 0 {
		t.Errorf("Expected secondary to be unused, got %v", unused.spawned)
	}
}

type fakeActivator struct {
	activated []string
	err       error
}

func (a *fakeActivator) Activate(name string) error {
	a.activated = append(a.activated, name)
	return a.err
}

func TestLaunchDBusActivatable(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "org.gnome.Maps.desktop",
		"[Desktop Entry]\nType=Application\nName=Maps\nDBusActivatable=true\n")
	writeDesktopFile(t, dir, "org.gnome.Weather.desktop",
		"[Desktop Entry]\nType=Application\nName=Weather\nExec=gnome-weather\nDBusActivatable=true\n")

	registry := NewDesktopRegistry(NewAppLoaderForDirs([]string{dir}))
	spawner := &recordingSpawner{}
	activator := &fakeActivator{}
	catalog := NewCatalog(registry, newTestPrefs(t), spawner)
	catalog.SetActivator(activator)

	launched, err := catalog.Launch("org.gnome.Maps")
	if err != nil || !launched {
		t.Fatalf("Expected D-Bus launch, got %v %v", launched, err)
	}
	if !reflect.DeepEqual(activator.activated, []string{"org.gnome.Maps"}) {
		t.Errorf("Expected activation of org.gnome.Maps, got %v", activator.activated)
	}
	if len(spawner.spawned) != 0 {
		t.Errorf("Expected no process spawn, got %v", spawner.spawned)
	}

	activator.err = errors.New("no such name")
	launched, err = catalog.Launch("org.gnome.Weather")
	if err != nil || !launched {
		t.Fatalf("Expected Exec fallback, got %v %v", launched, err)
	}
	if !reflect.DeepEqual(spawner.spawned, [][]string{{"gnome-weather"}}) {
		t.Errorf("Expected [[gnome-weather]], got %v", spawner.spawned)
	}

	if launched, err := catalog.Launch("org.gnome.Maps"); err == nil || launched {
		t.Errorf("Expected error without Exec to fall back on, got %v %v", launched, err)
	}
}

func TestApplicationPath(t *testing.T) {
	if got := ApplicationPath("org.gnome.Maps"); got != "/org/gnome/Maps" {
		t.Errorf("Expected /org/gnome/Maps, got %s", got)
	}
	if got := ApplicationPath("org.example.my-app"); got != "/org/example/my_app" {
		t.Errorf("Expected /org/example/my_app, got %s", got)
	}
}
