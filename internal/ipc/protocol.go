// Package ipc is the line protocol between cleanlauncher and its client.
// A client writes one command per connection and reads one reply line:
// "ok" or "error: <reason>".
package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

type Command string

const (
	CmdHome     Command = "home"
	CmdDrawer   Command = "drawer"
	CmdSettings Command = "settings"
	CmdHide     Command = "hide"
	CmdToggle   Command = "toggle"
	CmdReload   Command = "reload"
	CmdQuit     Command = "quit"
)

const (
	replyOK     = "ok"
	replyPrefix = "error: "
	maxMessage  = 1024
)

var ErrUnknownCommand = errors.New("unknown command")

var commands = map[Command]bool{
	CmdHome: true, CmdDrawer: true, CmdSettings: true,
	CmdHide: true, CmdToggle: true, CmdReload: true, CmdQuit: true,
}

// Parse accepts a bare command or "show <screen>". "launcher" is kept as
// an alias of home for existing keybindings.
func Parse(message string) (Command, error) {
	fields := strings.Fields(strings.ToLower(message))
	switch {
	case len(fields) == 0:
		return "", fmt.Errorf("%w: empty message", ErrUnknownCommand)
	case len(fields) == 2 && fields[0] == "show":
		fields = fields[1:]
	case len(fields) > 1:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, message)
	}

	if fields[0] == "launcher" {
		return CmdHome, nil
	}
	cmd := Command(fields[0])
	if !commands[cmd] {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, message)
	}
	return cmd, nil
}

// Send delivers cmd to the launcher listening on socketPath and waits for
// its reply.
func Send(socketPath string, cmd Command, timeout time.Duration) error {
	conn, err := net.DialTimeout("unix", socketPath, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	if _, err := fmt.Fprintf(conn, "%s\n", cmd); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == replyOK {
		return nil
	}
	return errors.New(strings.TrimPrefix(reply, replyPrefix))
}

func formatReply(err error) string {
	if err != nil {
		return replyPrefix + err.Error() + "\n"
	}
	return replyOK + "\n"
}
