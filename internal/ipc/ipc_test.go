package ipc

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		message string
		want    Command
		wantErr bool
	}{
		{"home", CmdHome, false},
		{"  drawer\n", CmdDrawer, false},
		{"show settings", CmdSettings, false},
		{"SHOW Drawer", CmdDrawer, false},
		{"launcher", CmdHome, false},
		{"toggle", CmdToggle, false},
		{"reload", CmdReload, false},
		{"quit", CmdQuit, false},
		{"", "", true},
		{"show", "", true},
		{"show nowhere", "", true},
		{"statusbar:hello", "", true},
		{"hide now please", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, err := Parse(tt.message)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCommand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerRoundTrip(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "cleanlauncher.sock")

	var (
		mu       sync.Mutex
		received []Command
	)
	server := NewServer(socket, func(cmd Command) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, cmd)
		if cmd == CmdReload {
			return errors.New("catalog unavailable")
		}
		return nil
	})
	require.NoError(t, server.Start())
	t.Cleanup(func() { server.Stop() })

	assert.Error(t, server.Start(), "second Start must fail")

	require.NoError(t, Send(socket, CmdDrawer, time.Second))

	err := Send(socket, CmdReload, time.Second)
	require.Error(t, err)
	assert.Equal(t, "catalog unavailable", err.Error())

	err = Send(socket, Command("bogus"), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")

	mu.Lock()
	assert.Equal(t, []Command{CmdDrawer, CmdReload}, received)
	mu.Unlock()

	require.NoError(t, server.Stop())
	assert.Error(t, Send(socket, CmdHome, 200*time.Millisecond), "socket is gone after Stop")
}
