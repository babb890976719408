package launcher

import "github.com/chess10kp/cleanlauncher/internal/apps"

// RowKind tags the variant held by a Row.
type RowKind int

const (
	RowApp RowKind = iota
	RowAllApps
	RowSpacer
	RowClock
)

func (k RowKind) String() string {
	switch k {
	case RowApp:
		return "app"
	case RowAllApps:
		return "all_apps"
	case RowSpacer:
		return "spacer"
	case RowClock:
		return "clock"
	default:
		return "unknown"
	}
}

// Row is one renderable list entry. App is only meaningful for RowApp and
// RowClock; Text is the styled label and Symbol the state indicator shown in
// management lists. Muted rows are drawn in the secondary color.
type Row struct {
	Kind      RowKind
	App       apps.AppRecord
	Text      string
	Symbol    string
	Secondary string
	Muted     bool
}

// Launchable reports whether activating the row starts an app.
func (r Row) Launchable() bool {
	return r.Kind == RowApp || r.Kind == RowClock
}

// Gated reports whether the row needs the long hold instead of a tap.
func (r Row) Gated() bool {
	return r.Launchable() && r.App.State == apps.StateBad
}
