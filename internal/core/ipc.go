package core

import (
	"log"

	"github.com/gotk3/gotk3/glib"

	"github.com/chess10kp/cleanlauncher/internal/config"
	"github.com/chess10kp/cleanlauncher/internal/ipc"
)

type IPCServer = ipc.Server

// NewIPCServer serves client commands, running each one on the GTK main
// loop.
func NewIPCServer(app *App, cfg *config.Config) *IPCServer {
	return ipc.NewServer(cfg.SocketPath, func(cmd ipc.Command) error {
		glib.IdleAdd(func() {
			app.handleCommand(cmd)
		})
		return nil
	})
}

func (a *App) handleCommand(cmd ipc.Command) {
	log.Printf("[IPC] Running %s", cmd)
	switch cmd {
	case ipc.CmdHome:
		a.Present(ScreenHome)
	case ipc.CmdDrawer:
		a.Present(ScreenDrawer)
	case ipc.CmdSettings:
		a.Present(ScreenSettings)
	case ipc.CmdHide:
		a.Hide()
	case ipc.CmdToggle:
		a.Toggle()
	case ipc.CmdReload:
		a.Reload()
	case ipc.CmdQuit:
		a.Quit()
	}
}
