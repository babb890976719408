package sway

import (
	"context"
	"errors"
	"testing"

	"github.com/chess10kp/cleanlauncher/internal/config"
)

func TestBarModeCommand(t *testing.T) {
	tests := []struct {
		visible bool
		barID   string
		want    string
	}{
		{true, "", "bar mode dock"},
		{false, "", "bar mode invisible"},
		{false, "bar-0", "bar mode invisible bar-0"},
	}

	for _, tt := range tests {
		if got := BarModeCommand(tt.visible, tt.barID); got != tt.want {
			t.Errorf("BarModeCommand(%v, %q) = %q, expected %q", tt.visible, tt.barID, got, tt.want)
		}
	}
}

func TestExecCommand(t *testing.T) {
	got := ExecCommand([]string{"/opt/My App/app", "--name", `say "hi"`, ""})
	want := `exec "/opt/My App/app" --name "say \"hi\"" ""`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestUnavailableWithoutSocket(t *testing.T) {
	t.Setenv("SWAYSOCK", "")

	c := New(config.SwayConfig{Enabled: true, ControlBar: true})
	if c.Available() {
		t.Fatal("Expected controller to be unavailable without SWAYSOCK")
	}
	if err := c.Spawn([]string{"true"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if err := c.SetBarVisible(context.Background(), false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}

	disabled := New(config.SwayConfig{Enabled: true, ControlBar: false})
	if err := disabled.SetBarVisible(context.Background(), false); err != nil {
		t.Errorf("Expected no-op when bar control is off, got %v", err)
	}
}
