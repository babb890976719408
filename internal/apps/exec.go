package apps

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

var ErrEmptyCommand = errors.New("empty exec command")

// Action is a resolved launch target for one app.
type Action struct {
	ID       string
	Argv     []string
	Terminal bool
	// DBusName is set for D-Bus activatable apps. Argv may then be empty.
	DBusName string
}

// Spawner starts a command detached from the launcher.
type Spawner interface {
	Spawn(argv []string) error
}

// ProcessSpawner starts commands as session leaders so they outlive the
// launcher.
type ProcessSpawner struct{}

func (ProcessSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	// Reap in the background; the launcher never waits on apps.
	go cmd.Wait()
	return nil
}

// FallbackSpawner tries Primary and falls back to Secondary when it fails.
type FallbackSpawner struct {
	Primary   Spawner
	Secondary Spawner
}

func (f FallbackSpawner) Spawn(argv []string) error {
	err := f.Primary.Spawn(argv)
	if err == nil {
		return nil
	}
	log.Printf("[APPS-EXEC] Primary spawner failed (%v), falling back", err)
	return f.Secondary.Spawn(argv)
}

// ExecAction launches the action through s, wrapping terminal apps in $TERMINAL.
func ExecAction(a Action, s Spawner) error {
	argv := a.Argv
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	if a.Terminal {
		term := os.Getenv("TERMINAL")
		if term == "" {
			term = "xterm"
		}
		argv = append([]string{term, "-e"}, argv...)
	}

	log.Printf("[APPS-EXEC] Launching %s: %v", a.ID, argv)
	return s.Spawn(argv)
}

// fieldCodes are the desktop-entry Exec placeholders a launcher without
// file arguments drops.
var fieldCodes = map[string]bool{
	"%f": true, "%F": true, "%u": true, "%U": true,
	"%i": true, "%c": true, "%k": true,
	"%d": true, "%D": true, "%n": true, "%N": true, "%v": true, "%m": true,
}

// stripFieldCodes removes field codes wherever they appear in arg and turns
// "%%" into a literal percent sign. It reports false when arg consisted only
// of field codes and should be dropped.
func stripFieldCodes(arg string) (string, bool) {
	if !strings.Contains(arg, "%") {
		return arg, true
	}

	var b strings.Builder
	dropped := false
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' || i+1 == len(arg) {
			b.WriteByte(arg[i])
			continue
		}
		code := arg[i : i+2]
		switch {
		case code == "%%":
			b.WriteByte('%')
			i++
		case fieldCodes[code]:
			dropped = true
			i++
		default:
			b.WriteByte(arg[i])
		}
	}

	out := b.String()
	return out, out != "" || !dropped
}

// ParseExec splits a desktop-entry Exec value into argv, honouring double
// quotes and backslash escapes, and removes field codes.
func ParseExec(execLine string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		hasArg  bool
	)

	runes := []rune(execLine)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			i++
			current.WriteRune(runes[i])
			hasArg = true
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case (r == ' ' || r == '\t') && !inQuote:
			if hasArg {
				args = append(args, current.String())
				current.Reset()
				hasArg = false
			}
		default:
			current.WriteRune(r)
			hasArg = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote in exec %q", execLine)
	}
	if hasArg {
		args = append(args, current.String())
	}

	argv := make([]string, 0, len(args))
	for _, arg := range args {
		if arg, ok := stripFieldCodes(arg); ok {
			argv = append(argv, arg)
		}
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}
