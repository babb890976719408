package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/urfave/cli/v3"

	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/core"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

var ErrLauncherAlreadyRunning = errors.New("cleanlauncher is already running")

func main() {
	cmd := &cli.Command{
		Name:  "cleanlauncher",
		Usage: "a minimal text launcher for your apps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to config.toml",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "keep preferences in memory only",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadAndValidateConfig(cmd.String("config"))
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	if logFile := openLog(cfg.LogPath); logFile != nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	lock, err := ensureSingleInstance(cfg.LockPath)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	kind, path := cfg.Preferences.Backend, cfg.Preferences.Path
	if cmd.Bool("ephemeral") {
		kind = "memory"
	}
	backend, err := prefs.NewBackend(kind, path)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	store, err := prefs.Open(backend)
	if err != nil {
		return err
	}
	defer store.Close()

	app, err := core.NewApp(cfg, store)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return app.Run()
}

func openLog(path string) *os.File {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return nil
	}
	return f
}

// ensureSingleInstance holds an advisory lock for the life of the process.
// The kernel drops it if the launcher crashes.
func ensureSingleInstance(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", path, err)
	}
	if !locked {
		return nil, ErrLauncherAlreadyRunning
	}
	return lock, nil
}
