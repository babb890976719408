package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/ipc"
)

const sendTimeout = 2 * time.Second

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cleanlauncher-client: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "cleanlauncher-client",
		Usage: "control cleanlauncher from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to config.toml",
			},
			&cli.StringFlag{
				Name:    "socket",
				Usage:   "override the launcher socket path",
				Sources: cli.EnvVars("CLEANLAUNCHER_SOCKET"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "show the launcher on a screen",
				ArgsUsage: "[home|drawer|settings]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					screen := cmd.Args().First()
					if screen == "" {
						screen = string(ipc.CmdHome)
					}
					c, err := ipc.Parse("show " + screen)
					if err != nil {
						return err
					}
					return send(cmd, c)
				},
			},
			windowCommand(ipc.CmdHide, "hide the launcher"),
			windowCommand(ipc.CmdToggle, "show or hide the launcher (bind to a key)"),
			windowCommand(ipc.CmdReload, "rescan apps and re-read preferences"),
			windowCommand(ipc.CmdQuit, "stop the launcher"),
			appsCommand(),
			appCommand(),
			settingsCommand(),
		},
	}
}

func windowCommand(c ipc.Command, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(c),
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return send(cmd, c)
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if socket := cmd.String("socket"); socket != "" {
		cfg.SocketPath = socket
	}
	return cfg, nil
}

func send(cmd *cli.Command, c ipc.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := ipc.Send(cfg.SocketPath, c, sendTimeout); err != nil {
		return fmt.Errorf("%w (is cleanlauncher running?)", err)
	}
	return nil
}
