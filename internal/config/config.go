package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	AppName     string            `toml:"app_name"`
	AppID       string            `toml:"app_id"`
	SocketPath  string            `toml:"socket_path"`
	LockPath    string            `toml:"lock_path"`
	LogPath     string            `toml:"log_path"`
	CacheDir    string            `toml:"cache_dir"`
	ConfigDir   string            `toml:"config_dir"`
	DataDir     string            `toml:"data_dir"`
	Window      WindowConfig      `toml:"window"`
	Search      SearchConfig      `toml:"search"`
	Gestures    GesturesConfig    `toml:"gestures"`
	Clock       ClockConfig       `toml:"clock"`
	DesktopApps DesktopAppsConfig `toml:"desktop_apps"`
	Cache       CacheConfig       `toml:"cache"`
	Icons       IconsConfig       `toml:"icons"`
	Styling     StylingConfig     `toml:"styling"`
	Preferences PreferencesConfig `toml:"preferences"`
	Sway        SwayConfig        `toml:"sway"`
}

type WindowConfig struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Decorated  bool `toml:"decorated"`
	Fullscreen bool `toml:"fullscreen"`
	LayerShell bool `toml:"layer_shell"` // home window as a bottom layer surface (wlroots)
	// Hide the window after launching an app instead of keeping the home screen up.
	HideOnLaunch bool `toml:"hide_on_launch"`
}

type SearchConfig struct {
	MatchMode     string `toml:"match_mode"`     // prefix, contains or fuzzy
	DebounceDelay int    `toml:"debounce_delay"` // milliseconds
	CacheSize     int    `toml:"cache_size"`
	MinFuzzyScore int    `toml:"min_fuzzy_score"`
}

type GesturesConfig struct {
	BadAppHoldMs   int `toml:"bad_app_hold_ms"`
	MenuHoldMs     int `toml:"menu_hold_ms"`
	SwipeThreshold int `toml:"swipe_threshold"` // accumulated scroll delta that counts as a swipe
}

type ClockConfig struct {
	Packages        []string `toml:"packages"`
	Format          string   `toml:"format"`
	RefreshInterval int      `toml:"refresh_interval"` // seconds
}

type DesktopAppsConfig struct {
	ScanUserDir    bool     `toml:"scan_user_dir"`
	ScanSystemDirs bool     `toml:"scan_system_dirs"`
	CustomDirs     []string `toml:"custom_dirs"`
	MaxParallel    int      `toml:"max_parallel"`
}

type CacheConfig struct {
	Enabled          bool   `toml:"enabled"`
	AppsCacheFile    string `toml:"apps_cache_file"`
	CacheMaxAgeHours int    `toml:"cache_max_age_hours"`
}

type IconsConfig struct {
	EnableIcons  bool   `toml:"enable_icons"`
	IconSize     int    `toml:"icon_size"`
	CacheSize    int    `toml:"cache_size"`
	FallbackIcon string `toml:"fallback_icon"`
}

type PaletteConfig struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Muted      string `toml:"muted"` // bad apps
	Accent     string `toml:"accent"`
	Divider    string `toml:"divider"`
	Entry      string `toml:"entry"`
}

type StylingConfig struct {
	FontFamily string        `toml:"font_family"`
	FontWeight string        `toml:"font_weight"`
	Dark       PaletteConfig `toml:"dark"`
	Light      PaletteConfig `toml:"light"`
	CustomCSS  string        `toml:"custom_css"` // path to an extra stylesheet
}

type PreferencesConfig struct {
	Backend string `toml:"backend"` // file, sqlite or memory
	Path    string `toml:"path"`
}

type SwayConfig struct {
	Enabled        bool   `toml:"enabled"`
	ControlBar     bool   `toml:"control_bar"` // apply status_bar_visible to swaybar
	BarID          string `toml:"bar_id"`      // empty means every bar
	LaunchWithExec bool   `toml:"launch_with_exec"`
}

// DefaultPath is where the launcher and its tools look for config.toml.
const DefaultPath = "~/.config/cleanlauncher/config.toml"

var DefaultConfig = Config{
	AppName:    "cleanlauncher",
	AppID:      "com.github.chess10kp.cleanlauncher",
	SocketPath: "/tmp/cleanlauncher_socket",
	LockPath:   "/tmp/cleanlauncher.lock",
	LogPath:    "~/.cache/cleanlauncher/cleanlauncher.log",
	CacheDir:   "~/.cache/cleanlauncher",
	ConfigDir:  "~/.config/cleanlauncher",
	DataDir:    "~/.local/share/cleanlauncher",
	Window: WindowConfig{
		Width:        480,
		Height:       800,
		Decorated:    false,
		Fullscreen:   false,
		LayerShell:   false,
		HideOnLaunch: false,
	},
	Search: SearchConfig{
		MatchMode:     "prefix",
		DebounceDelay: 50,
		CacheSize:     200,
		MinFuzzyScore: 25,
	},
	Gestures: GesturesConfig{
		BadAppHoldMs:   7000,
		MenuHoldMs:     500,
		SwipeThreshold: 3,
	},
	Clock: ClockConfig{
		Packages: []string{
			"org.gnome.clocks",
			"org.kde.kclock",
			"com.android.deskclock",
			"com.google.android.deskclock",
		},
		Format:          "15:04",
		RefreshInterval: 60,
	},
	DesktopApps: DesktopAppsConfig{
		ScanUserDir:    true,
		ScanSystemDirs: true,
		CustomDirs:     []string{},
		MaxParallel:    10,
	},
	Cache: CacheConfig{
		Enabled:          true,
		AppsCacheFile:    "apps.json",
		CacheMaxAgeHours: 24,
	},
	Icons: IconsConfig{
		EnableIcons:  false,
		IconSize:     24,
		CacheSize:    300,
		FallbackIcon: "application-x-executable",
	},
	Styling: StylingConfig{
		FontFamily: "Iosevka, monospace",
		FontWeight: "normal",
		Dark: PaletteConfig{
			Background: "#0e1419",
			Foreground: "#ebdbb2",
			Muted:      "#665c54",
			Accent:     "#89b4fa",
			Divider:    "#313244",
			Entry:      "#181825",
		},
		Light: PaletteConfig{
			Background: "#fbf1c7",
			Foreground: "#282828",
			Muted:      "#a89984",
			Accent:     "#458588",
			Divider:    "#d5c4a1",
			Entry:      "#f2e5bc",
		},
	},
	Preferences: PreferencesConfig{
		Backend: "file",
		Path:    "~/.local/share/cleanlauncher/launcher_prefs.toml",
	},
	Sway: SwayConfig{
		Enabled:        true,
		ControlBar:     true,
		BarID:          "",
		LaunchWithExec: true,
	},
}

// Default returns a deep copy of DefaultConfig with paths expanded.
func Default() *Config {
	cfg := DefaultConfig
	cfg.Clock.Packages = append([]string(nil), DefaultConfig.Clock.Packages...)
	cfg.DesktopApps.CustomDirs = append([]string(nil), DefaultConfig.DesktopApps.CustomDirs...)
	cfg.expandPaths()
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	// Unset keys keep their defaults.
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", expandedPath, err)
	}

	cfg.expandPaths()
	return cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandPaths() {
	c.SocketPath = expandPath(c.SocketPath)
	c.LockPath = expandPath(c.LockPath)
	c.LogPath = expandPath(c.LogPath)
	c.CacheDir = expandPath(c.CacheDir)
	c.ConfigDir = expandPath(c.ConfigDir)
	c.DataDir = expandPath(c.DataDir)
	c.Preferences.Path = expandPath(c.Preferences.Path)
	c.Styling.CustomCSS = expandPath(c.Styling.CustomCSS)
	for i, dir := range c.DesktopApps.CustomDirs {
		c.DesktopApps.CustomDirs[i] = expandPath(dir)
	}
}

// ExpandPath expands a leading ~ to the current user's home directory.
func ExpandPath(path string) string {
	return expandPath(path)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
