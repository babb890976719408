package apps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const activateTimeout = 3 * time.Second

// Activator starts an app by its D-Bus well-known name.
type Activator interface {
	Activate(name string) error
}

// DBusActivator calls org.freedesktop.Application.Activate on the session
// bus, which starts the app's service if it is not running yet.
type DBusActivator struct {
	conn *dbus.Conn
}

func NewDBusActivator() (*DBusActivator, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusActivator{conn: conn}, nil
}

func (d *DBusActivator) Activate(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), activateTimeout)
	defer cancel()

	obj := d.conn.Object(name, ApplicationPath(name))
	call := obj.CallWithContext(ctx, "org.freedesktop.Application.Activate", 0, map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("failed to activate %s: %w", name, call.Err)
	}
	return nil
}

// ApplicationPath is the object path an application exports for name:
// dots become slashes and dashes become underscores.
func ApplicationPath(name string) dbus.ObjectPath {
	return dbus.ObjectPath("/" + strings.NewReplacer(".", "/", "-", "_").Replace(name))
}
