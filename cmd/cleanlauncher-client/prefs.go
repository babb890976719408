package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/chess10kp/cleanlauncher/internal/apps"
	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/ipc"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

var (
	errUsage      = errors.New("wrong number of arguments")
	errUnknownKey = errors.New("unknown setting")
)

func openPrefs(cfg *config.Config) (*prefs.Preferences, error) {
	backend, err := prefs.NewBackend(cfg.Preferences.Backend, cfg.Preferences.Path)
	if err != nil {
		return nil, err
	}
	return prefs.Open(backend)
}

// withPrefs runs fn against the on-disk store, then asks a running launcher
// to pick the change up.
func withPrefs(cmd *cli.Command, fn func(store *prefs.Preferences) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openPrefs(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := fn(store); err != nil {
		return err
	}
	if err := ipc.Send(cfg.SocketPath, ipc.CmdReload, sendTimeout); err != nil {
		fmt.Fprintln(os.Stderr, "saved; launcher not notified:", err)
	}
	return nil
}

func appsCommand() *cli.Command {
	return &cli.Command{
		Name:  "apps",
		Usage: "list installed apps with their state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "only list apps in this state (favorite, hidden, bad, neither)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			registry := apps.NewDesktopRegistry(apps.NewAppLoader(cfg))
			records, err := apps.NewCatalog(registry, store, nil).ListInstalledApps()
			if err != nil {
				return err
			}
			return listApps(os.Stdout, records, cmd.String("state"))
		},
	}
}

func listApps(w io.Writer, records []apps.AppRecord, state string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		if state != "" && rec.State.String() != state {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.ID, rec.DisplayName(), rec.State)
	}
	return tw.Flush()
}

// appActions maps "app <verb> <id>" onto the store.
var appActions = map[string]func(store *prefs.Preferences, id string) error{
	"fav":        (*prefs.Preferences).AddFavorite,
	"unfav":      (*prefs.Preferences).RemoveFavorite,
	"hide":       (*prefs.Preferences).HideApp,
	"unhide":     (*prefs.Preferences).UnhideApp,
	"bad":        (*prefs.Preferences).MarkAsBad,
	"unbad":      (*prefs.Preferences).UnmarkBad,
	"clear-name": (*prefs.Preferences).ClearCustomName,
}

func appCommand() *cli.Command {
	verbs := make([]string, 0, len(appActions))
	for verb := range appActions {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)

	sub := make([]*cli.Command, 0, len(verbs)+1)
	for _, verb := range verbs {
		action := appActions[verb]
		sub = append(sub, &cli.Command{
			Name:      verb,
			ArgsUsage: "<app-id>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return errUsage
				}
				id := cmd.Args().First()
				return withPrefs(cmd, func(store *prefs.Preferences) error {
					return action(store, id)
				})
			},
		})
	}
	sub = append(sub, &cli.Command{
		Name:      "rename",
		ArgsUsage: "<app-id> <name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errUsage
			}
			return withPrefs(cmd, func(store *prefs.Preferences) error {
				return store.SetCustomName(cmd.Args().Get(0), cmd.Args().Get(1))
			})
		},
	})

	return &cli.Command{
		Name:     "app",
		Usage:    "change how one app is listed",
		Commands: sub,
	}
}

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "read or change display settings",
		Commands: []*cli.Command{
			{
				Name: "get",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					store, err := openPrefs(cfg)
					if err != nil {
						return err
					}
					defer store.Close()
					printSettings(os.Stdout, store.Settings())
					return nil
				},
			},
			{
				Name:      "set",
				ArgsUsage: "<font_size|text_style|dark_mode|status_bar> <value>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return errUsage
					}
					return withPrefs(cmd, func(store *prefs.Preferences) error {
						return setSetting(store, cmd.Args().Get(0), cmd.Args().Get(1))
					})
				},
			},
		},
	}
}

func printSettings(w io.Writer, s prefs.Settings) {
	fmt.Fprintf(w, "font_size=%s\n", s.FontSize)
	fmt.Fprintf(w, "text_style=%s\n", s.TextStyle)
	fmt.Fprintf(w, "dark_mode=%t\n", s.DarkMode)
	fmt.Fprintf(w, "status_bar=%t\n", s.StatusBarVisible)
}

func setSetting(store *prefs.Preferences, key, value string) error {
	switch key {
	case "font_size":
		size, err := prefs.ParseFontSize(value)
		if err != nil {
			return err
		}
		return store.SetFontSize(size)
	case "text_style":
		style, err := prefs.ParseTextStyle(value)
		if err != nil {
			return err
		}
		return store.SetTextStyle(style)
	case "dark_mode":
		dark, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("dark_mode: %w", err)
		}
		return store.SetDarkMode(dark)
	case "status_bar":
		visible, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("status_bar: %w", err)
		}
		return store.SetStatusBarVisible(visible)
	default:
		return fmt.Errorf("%w: %q", errUnknownKey, key)
	}
}
