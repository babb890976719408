// Package sway drives the compositor for the parts of the launcher that
// reach outside its own window: swaybar visibility and app launching.
package sway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/joshuarubin/go-sway"

	"github.com/chess10kp/cleanlauncher/internal/config"
)

var ErrUnavailable = errors.New("sway IPC socket not available")

const commandTimeout = 2 * time.Second

// Controller sends commands to the running sway instance.
type Controller struct {
	cfg config.SwayConfig
}

func New(cfg config.SwayConfig) *Controller {
	return &Controller{cfg: cfg}
}

// Available reports whether sway integration is enabled and a sway session
// is running.
func (c *Controller) Available() bool {
	return c.cfg.Enabled && os.Getenv("SWAYSOCK") != ""
}

// SetBarVisible docks or hides swaybar. It is a no-op when bar control is
// disabled.
func (c *Controller) SetBarVisible(ctx context.Context, visible bool) error {
	if !c.cfg.ControlBar {
		return nil
	}
	if !c.Available() {
		return ErrUnavailable
	}
	return c.run(ctx, BarModeCommand(visible, c.cfg.BarID))
}

// Spawn launches argv with sway's exec so the app lands on the focused
// workspace and is parented to the compositor.
func (c *Controller) Spawn(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	if !c.Available() {
		return ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return c.run(ctx, ExecCommand(argv))
}

func (c *Controller) run(ctx context.Context, command string) error {
	client, err := sway.New(ctx)
	if err != nil {
		log.Printf("[SWAY] IPC connect failed, falling back to swaymsg: %v", err)
		return runSwaymsg(command)
	}

	replies, err := client.RunCommand(ctx, command)
	if err != nil {
		return fmt.Errorf("sway command %q failed: %w", command, err)
	}
	for _, r := range replies {
		if !r.Success {
			return fmt.Errorf("sway command %q rejected: %s", command, r.Error)
		}
	}

	log.Printf("[SWAY] %s", command)
	return nil
}

func runSwaymsg(command string) error {
	env := os.Environ()
	// Remove LD_PRELOAD to avoid child process issues
	for i, e := range env {
		if strings.HasPrefix(e, "LD_PRELOAD=") {
			env = append(env[:i], env[i+1:]...)
			break
		}
	}

	cmd := exec.Command("swaymsg", command)
	cmd.Env = env
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("swaymsg %q failed: %w: %s", command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// BarModeCommand builds the swaybar mode command. An empty barID targets
// every bar.
func BarModeCommand(visible bool, barID string) string {
	mode := "invisible"
	if visible {
		mode = "dock"
	}
	if barID == "" {
		return "bar mode " + mode
	}
	return fmt.Sprintf("bar mode %s %s", mode, barID)
}

// ExecCommand quotes argv into a sway exec command.
func ExecCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quote(arg)
	}
	return "exec " + strings.Join(quoted, " ")
}

func quote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"'\\;,$`") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(arg) + `"`
}
