package launcher

import (
	"time"

	"github.com/chess10kp/cleanlauncher/internal/apps"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

// View selects which apps a list shows.
type View int

const (
	// ViewHome lists favorites, or an "All Apps" link when there are none.
	ViewHome View = iota
	// ViewHomeSearch lists search hits on the home screen: everything that
	// is neither a favorite nor hidden.
	ViewHomeSearch
	// ViewDrawer lists apps with no state.
	ViewDrawer
	// ViewSettings lists every app.
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewHomeSearch:
		return "home_search"
	case ViewDrawer:
		return "drawer"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

const AllAppsLabel = "All Apps"

// PresentContext carries the per-render inputs of Present.
type PresentContext struct {
	View          View
	ShowState     bool
	FontSize      prefs.FontSize
	TextStyle     prefs.TextStyle
	LeadingSpacer bool

	// ClockIDs are app ids whose rows carry the current time.
	ClockIDs    []string
	ClockFormat string
	Now         time.Time
}

// StateSymbol is the indicator drawn next to an app in management lists.
func StateSymbol(s apps.State) string {
	switch s {
	case apps.StateFavorite:
		return "❤"
	case apps.StateHidden:
		return "\U0001F47B"
	case apps.StateBad:
		return "\U0001F608"
	default:
		return ""
	}
}

func (c PresentContext) includes(s apps.State) bool {
	switch c.View {
	case ViewHome:
		return s == apps.StateFavorite
	case ViewHomeSearch:
		return s != apps.StateFavorite && s != apps.StateHidden
	case ViewDrawer:
		return s == apps.StateNeither
	default:
		return true
	}
}

func (c PresentContext) isClock(id string) bool {
	for _, clockID := range c.ClockIDs {
		if clockID == id {
			return true
		}
	}
	return false
}

// Present turns resolved records into rows for one view. Input order is not
// trusted; app rows are always sorted by display name.
func Present(records []apps.AppRecord, ctx PresentContext) []Row {
	selected := make([]apps.AppRecord, 0, len(records))
	for _, rec := range records {
		if ctx.includes(rec.State) {
			selected = append(selected, rec)
		}
	}
	apps.SortByDisplayName(selected)

	rows := make([]Row, 0, len(selected)+2)
	if ctx.LeadingSpacer {
		rows = append(rows, Row{Kind: RowSpacer})
	}

	format := ctx.ClockFormat
	if format == "" {
		format = "15:04"
	}

	for _, rec := range selected {
		row := Row{
			Kind:  RowApp,
			App:   rec,
			Text:  ctx.TextStyle.Apply(rec.DisplayName()),
			Muted: rec.State == apps.StateBad,
		}
		if ctx.ShowState {
			row.Symbol = StateSymbol(rec.State)
		}
		if ctx.View == ViewHome && ctx.isClock(rec.ID) {
			row.Kind = RowClock
			row.Secondary = ctx.Now.Format(format)
		}
		rows = append(rows, row)
	}

	if ctx.View == ViewHome && len(selected) == 0 {
		rows = append(rows, Row{
			Kind: RowAllApps,
			Text: ctx.TextStyle.Apply(AllAppsLabel),
		})
	}

	return rows
}

// HasClock reports whether any row needs the once-a-minute refresh.
func HasClock(rows []Row) bool {
	for _, r := range rows {
		if r.Kind == RowClock {
			return true
		}
	}
	return false
}
