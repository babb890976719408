package apps

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chess10kp/cleanlauncher/internal/config"
)

const cacheVersion = "3"

// Entry is one launchable application as described by its .desktop file.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Exec        string `json:"exec"`
	Icon        string `json:"icon"`
	File        string `json:"file"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
	Terminal    bool   `json:"terminal"`
	NoDisplay   bool   `json:"no_display"`
	// DBusActivatable entries are started through org.freedesktop.Application.
	DBusActivatable bool `json:"dbus_activatable"`
}

// AppLoader scans application directories for .desktop entries and keeps a
// JSON cache of the result.
type AppLoader struct {
	apps        []Entry
	dirs        []string
	cacheFile   string
	cacheMaxAge time.Duration
	useCache    bool
	maxParallel int
	mu          sync.RWMutex
}

// NewAppLoader creates a loader for the directories cfg enables.
func NewAppLoader(cfg *config.Config) *AppLoader {
	var dirs []string
	if cfg.DesktopApps.ScanUserDir {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(os.Getenv("HOME"), ".local", "share")
		}
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	dirs = append(dirs, cfg.DesktopApps.CustomDirs...)
	if cfg.DesktopApps.ScanSystemDirs {
		dirs = append(dirs, systemAppDirs()...)
	}

	l := NewAppLoaderForDirs(dirs)
	l.maxParallel = cfg.DesktopApps.MaxParallel
	if cfg.Cache.Enabled {
		l.cacheFile = filepath.Join(cfg.CacheDir, cfg.Cache.AppsCacheFile)
		l.cacheMaxAge = time.Duration(cfg.Cache.CacheMaxAgeHours) * time.Hour
		l.useCache = true
	}
	return l
}

// NewAppLoaderForDirs creates an uncached loader over dirs. Earlier
// directories take precedence when two provide the same desktop-file ID.
func NewAppLoaderForDirs(dirs []string) *AppLoader {
	return &AppLoader{
		apps:        []Entry{},
		dirs:        dirs,
		maxParallel: 10,
	}
}

func systemAppDirs() []string {
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	var dirs []string
	for _, d := range strings.Split(dataDirs, ":") {
		if d == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(d, "applications"))
	}
	return dirs
}

// LoadApps loads applications from cache or from disk.
func (l *AppLoader) LoadApps(forceReload bool) ([]Entry, error) {
	loadStart := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if !forceReload && l.useCache && l.loadFromCache() {
		log.Printf("[APPS-LOADER] LoadApps completed from cache in %v", time.Since(loadStart))
		return l.copyApps(), nil
	}

	if err := l.loadFromSystem(); err != nil {
		return nil, fmt.Errorf("failed to load apps from system: %w", err)
	}

	if l.useCache {
		if err := l.saveToCache(); err != nil {
			log.Printf("[APPS-CACHE] Warning: failed to save cache: %v", err)
		}
	}

	log.Printf("[APPS-LOADER] LoadApps completed from system in %v", time.Since(loadStart))
	return l.copyApps(), nil
}

func (l *AppLoader) copyApps() []Entry {
	out := make([]Entry, len(l.apps))
	copy(out, l.apps)
	return out
}

type appsCache struct {
	Apps      []Entry  `json:"apps"`
	Dirs      []string `json:"dirs"`
	Timestamp string   `json:"timestamp"`
	Version   string   `json:"version"`
}

func (l *AppLoader) loadFromCache() bool {
	data, err := os.ReadFile(l.cacheFile)
	if err != nil {
		log.Printf("[APPS-CACHE] Cache miss: file not found or unreadable")
		return false
	}

	var cache appsCache
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Printf("[APPS-CACHE] Cache miss: failed to unmarshal cache file: %v", err)
		return false
	}

	if cache.Version != cacheVersion || strings.Join(cache.Dirs, ":") != strings.Join(l.dirs, ":") {
		log.Printf("[APPS-CACHE] Cache miss: version or directory set changed")
		return false
	}

	cacheTime, err := time.Parse(time.RFC3339, cache.Timestamp)
	if err != nil {
		return false
	}

	age := time.Since(cacheTime)
	if age >= l.cacheMaxAge {
		log.Printf("[APPS-CACHE] Cache miss: cache expired (age: %v, max: %v)", age, l.cacheMaxAge)
		return false
	}

	// Any directory touched after the cache was written invalidates it.
	for _, dir := range l.dirs {
		if info, err := os.Stat(dir); err == nil && info.ModTime().After(cacheTime) {
			log.Printf("[APPS-CACHE] Cache miss: %s modified since %v", dir, cacheTime)
			return false
		}
	}

	l.apps = cache.Apps
	log.Printf("[APPS-CACHE] Cache hit: loaded %d apps (age: %v)", len(cache.Apps), age)
	return true
}

func (l *AppLoader) saveToCache() error {
	if err := os.MkdirAll(filepath.Dir(l.cacheFile), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(appsCache{
		Apps:      l.apps,
		Dirs:      l.dirs,
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   cacheVersion,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	// Atomic write
	tempFile := l.cacheFile + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}

	if err := os.Rename(tempFile, l.cacheFile); err != nil {
		return fmt.Errorf("failed to rename temp cache file: %w", err)
	}

	log.Printf("[APPS-CACHE] Cache saved: %d apps", len(l.apps))
	return nil
}

type desktopFile struct {
	root string
	path string
}

// loadFromSystem parses every .desktop file under l.dirs.
func (l *AppLoader) loadFromSystem() error {
	start := time.Now()

	var files []desktopFile
	for _, dir := range l.dirs {
		if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}
			files = append(files, desktopFile{root: dir, path: path})
			return nil
		}); err != nil {
			continue
		}
	}

	log.Printf("[APPS-LOADER] Found %d .desktop files, parsing in parallel", len(files))

	parallel := l.maxParallel
	if parallel <= 0 {
		parallel = 10
	}

	// Results keep the directory order so precedence survives parallel parsing.
	results := make([]*Entry, len(files))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, parallel)

	for i, f := range files {
		wg.Add(1)
		go func(i int, f desktopFile) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			entry, err := parseDesktopFile(f.path)
			if err != nil {
				return
			}
			entry.ID = desktopFileID(f.root, f.path)
			results[i] = &entry
		}(i, f)
	}
	wg.Wait()

	seen := make(map[string]bool)
	apps := make([]Entry, 0, len(results))
	for i, entry := range results {
		// A shadowing entry hides the same ID in later dirs, even when NoDisplay.
		id := desktopFileID(files[i].root, files[i].path)
		if seen[id] {
			continue
		}
		seen[id] = true

		if entry == nil || entry.NoDisplay {
			continue
		}
		apps = append(apps, *entry)
	}

	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})

	l.apps = apps
	log.Printf("[APPS-LOADER] Loaded %d applications in %v", len(apps), time.Since(start))
	return nil
}

// desktopFileID follows the freedesktop rule: path relative to the
// applications dir, separators replaced with '-', suffix dropped.
func desktopFileID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
	return strings.TrimSuffix(rel, ".desktop")
}

// parseDesktopFile parses the [Desktop Entry] group of a single file.
func parseDesktopFile(path string) (Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer file.Close()

	app := Entry{File: path}
	inDesktopEntry := false
	typeSeen := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}
		if !inDesktopEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			app.Name = value
		case "Exec":
			app.Exec = value
		case "Icon":
			app.Icon = value
		case "Type":
			typeSeen = true
			if value != "Application" {
				app.NoDisplay = true
			}
		case "NoDisplay":
			if strings.EqualFold(value, "true") {
				app.NoDisplay = true
			}
		case "Hidden":
			if strings.EqualFold(value, "true") {
				app.NoDisplay = true
			}
		case "Terminal":
			app.Terminal = strings.EqualFold(value, "true")
		case "DBusActivatable":
			app.DBusActivatable = strings.EqualFold(value, "true")
		case "Keywords":
			app.Keywords = value
		case "Comment":
			if app.Description == "" {
				app.Description = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, err
	}

	if !typeSeen {
		app.NoDisplay = true
	}
	if app.Name == "" || (app.Exec == "" && !app.DBusActivatable) {
		return Entry{}, fmt.Errorf("invalid desktop file %s: missing Name or Exec", path)
	}

	return app, nil
}

// InvalidateCache removes the on-disk cache so the next load rescans.
func (l *AppLoader) InvalidateCache() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cacheFile != "" {
		os.Remove(l.cacheFile)
	}
}
