package main

import (
	"fmt"
	"os"

	"github.com/chess10kp/cleanlauncher/internal/config"
)

func main() {
	args := os.Args[1:]
	initDefault := len(args) > 0 && args[0] == "--init"
	if initDefault {
		args = args[1:]
	}

	configPath := config.DefaultPath
	if len(args) > 0 {
		configPath = args[0]
	}

	if initDefault {
		if _, err := os.Stat(config.ExpandPath(configPath)); err == nil {
			fmt.Printf("❌ %s already exists\n", configPath)
			os.Exit(1)
		}
		if err := config.SaveConfig(config.Default(), configPath); err != nil {
			fmt.Printf("❌ Failed to write default config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote default config to %s\n", configPath)
	}

	fmt.Printf("Validating config: %s\n", configPath)

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		fmt.Printf("❌ Config validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Config is valid!")
	fmt.Printf("   preferences: %s (%s)\n", cfg.Preferences.Path, cfg.Preferences.Backend)
	fmt.Printf("   match mode:  %s\n", cfg.Search.MatchMode)
	fmt.Printf("   socket:      %s\n", cfg.SocketPath)
}
