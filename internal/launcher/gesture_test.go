package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chess10kp/cleanlauncher/internal/apps"
)

func TestGesturesFor(t *testing.T) {
	t.Parallel()

	normal := Row{Kind: RowApp, App: record("camera", "Camera", apps.StateNeither)}
	bad := Row{Kind: RowApp, App: record("doom", "Doomscroll", apps.StateBad)}
	badClock := Row{Kind: RowClock, App: record("clock", "Clock", apps.StateBad)}
	allApps := Row{Kind: RowAllApps, Text: AllAppsLabel}
	spacer := Row{Kind: RowSpacer}

	tests := []struct {
		name string
		view View
		row  Row
		want RowGestures
	}{
		{"home app taps launch", ViewHome, normal, RowGestures{TapLaunch, HoldMenu}},
		{"home all apps link", ViewHome, allApps, RowGestures{TapAllApps, HoldNone}},
		{"home search bad app is gated", ViewHomeSearch, bad, RowGestures{TapNone, HoldGatedLaunch}},
		{"drawer app taps launch", ViewDrawer, normal, RowGestures{TapLaunch, HoldMenu}},
		{"drawer bad clock is gated", ViewDrawer, badClock, RowGestures{TapNone, HoldGatedLaunch}},
		{"settings tap does nothing", ViewSettings, normal, RowGestures{TapNone, HoldMenu}},
		{"settings bad app holds to menu", ViewSettings, bad, RowGestures{TapNone, HoldMenu}},
		{"spacer is inert", ViewHome, spacer, RowGestures{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GesturesFor(tt.view, tt.row))
		})
	}
}
