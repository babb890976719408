package launcher

// TapAction is what a plain click or keyboard activation on a row does.
type TapAction int

const (
	TapNone TapAction = iota
	TapLaunch
	TapAllApps
)

// HoldAction is what pressing and holding the primary button on a row does.
type HoldAction int

const (
	HoldNone HoldAction = iota
	// HoldMenu opens the context menu after the short menu hold.
	HoldMenu
	// HoldGatedLaunch launches only once the bad-app hold completes.
	HoldGatedLaunch
)

// RowGestures pairs the tap and hold behavior of one row.
type RowGestures struct {
	Tap  TapAction
	Hold HoldAction
}

// GesturesFor decides how a row in view responds to pointer input. The
// settings list manages apps rather than launching them: taps do nothing and
// every app row, bad ones included, opens its menu on hold. Elsewhere bad apps
// launch only through the long hold.
func GesturesFor(view View, r Row) RowGestures {
	switch {
	case r.Kind == RowAllApps:
		return RowGestures{Tap: TapAllApps}
	case !r.Launchable():
		return RowGestures{}
	case view == ViewSettings:
		return RowGestures{Tap: TapNone, Hold: HoldMenu}
	case r.Gated():
		return RowGestures{Tap: TapNone, Hold: HoldGatedLaunch}
	default:
		return RowGestures{Tap: TapLaunch, Hold: HoldMenu}
	}
}
