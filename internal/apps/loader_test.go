package apps

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDesktopFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write desktop file: %v", err)
	}
	return path
}

const firefoxDesktop = `[Desktop Entry]
Type=Application
Name=Firefox
Comment=Browse the web
Exec=firefox %u
Icon=firefox

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window
`

func TestParseDesktopFile_OnlyDesktopEntryGroup(t *testing.T) {
	dir := t.TempDir()
	path := writeDesktopFile(t, dir, "firefox.desktop", firefoxDesktop)

	entry, err := parseDesktopFile(path)
	if err != nil {
		t.Fatalf("Failed to parse desktop file: %v", err)
	}

	if entry.Name != "Firefox" {
		t.Errorf("Expected name Firefox, got %s", entry.Name)
	}
	if entry.Exec != "firefox %u" {
		t.Errorf("Expected exec from [Desktop Entry], got %s", entry.Exec)
	}
	if entry.Description != "Browse the web" {
		t.Errorf("Expected description, got %s", entry.Description)
	}
	if entry.NoDisplay {
		t.Error("Expected entry to be displayable")
	}
}

func TestParseDesktopFile_NonApplicationIsHidden(t *testing.T) {
	dir := t.TempDir()
	path := writeDesktopFile(t, dir, "link.desktop", "[Desktop Entry]\nType=Link\nName=Docs\nExec=xdg-open x\n")

	entry, err := parseDesktopFile(path)
	if err != nil {
		t.Fatalf("Failed to parse desktop file: %v", err)
	}
	if !entry.NoDisplay {
		t.Error("Expected Type=Link entry to be skipped")
	}
}

func TestDesktopFileID(t *testing.T) {
	tests := []struct {
		root string
		path string
		want string
	}{
		{"/usr/share/applications", "/usr/share/applications/firefox.desktop", "firefox"},
		{"/usr/share/applications", "/usr/share/applications/kde/konsole.desktop", "kde-konsole"},
		{"/usr/share/applications", "/usr/share/applications/org.gnome.Maps.desktop", "org.gnome.Maps"},
	}

	for _, tt := range tests {
		if got := desktopFileID(tt.root, tt.path); got != tt.want {
			t.Errorf("desktopFileID(%s) = %s, expected %s", tt.path, got, tt.want)
		}
	}
}

func TestLoadApps_SkipsHiddenAndShadowed(t *testing.T) {
	userDir := t.TempDir()
	systemDir := t.TempDir()

	writeDesktopFile(t, systemDir, "firefox.desktop", firefoxDesktop)
	writeDesktopFile(t, systemDir, "maps.desktop", "[Desktop Entry]\nType=Application\nName=Maps\nExec=maps\n")
	writeDesktopFile(t, systemDir, "daemon.desktop", "[Desktop Entry]\nType=Application\nName=Daemon\nExec=daemon\nNoDisplay=true\n")
	writeDesktopFile(t, systemDir, "old.desktop", "[Desktop Entry]\nType=Application\nName=Old\nExec=old\nHidden=true\n")
	// The user copy hides the system Maps.
	writeDesktopFile(t, userDir, "maps.desktop", "[Desktop Entry]\nType=Application\nName=Maps\nExec=maps\nNoDisplay=true\n")
	writeDesktopFile(t, userDir, "kde/konsole.desktop", "[Desktop Entry]\nType=Application\nName=konsole\nExec=konsole\n")

	loader := NewAppLoaderForDirs([]string{userDir, systemDir})
	entries, err := loader.LoadApps(true)
	if err != nil {
		t.Fatalf("Failed to load apps: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 apps, got %d: %+v", len(entries), entries)
	}
	if entries[0].ID != "firefox" || entries[1].ID != "kde-konsole" {
		t.Errorf("Expected [firefox kde-konsole], got [%s %s]", entries[0].ID, entries[1].ID)
	}
}

func TestLoadApps_Cache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeDesktopFile(t, dir, "firefox.desktop", firefoxDesktop)

	loader := NewAppLoaderForDirs([]string{dir})
	loader.useCache = true
	loader.cacheFile = filepath.Join(cacheDir, "apps.json")
	loader.cacheMaxAge = time.Hour

	// Make the dir look older than the cache we are about to write.
	past := time.Now().Add(-time.Minute)
	if err := os.Chtimes(dir, past, past); err != nil {
		t.Fatalf("Failed to set dir time: %v", err)
	}

	if _, err := loader.LoadApps(false); err != nil {
		t.Fatalf("Failed to load apps: %v", err)
	}
	if _, err := os.Stat(loader.cacheFile); err != nil {
		t.Fatalf("Expected cache file to exist: %v", err)
	}

	second := NewAppLoaderForDirs([]string{dir})
	second.useCache = true
	second.cacheFile = loader.cacheFile
	second.cacheMaxAge = time.Hour
	if !second.loadFromCache() {
		t.Fatal("Expected cache hit")
	}
	if len(second.apps) != 1 || second.apps[0].ID != "firefox" {
		t.Errorf("Expected cached firefox entry, got %+v", second.apps)
	}

	loader.InvalidateCache()
	if _, err := os.Stat(loader.cacheFile); !os.IsNotExist(err) {
		t.Errorf("Expected cache file to be removed, got %v", err)
	}
}
