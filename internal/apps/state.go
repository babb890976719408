package apps

import "github.com/chess10kp/cleanlauncher/internal/prefs"

// State is the user-assigned category of an app.
type State int

const (
	StateNeither State = iota
	StateFavorite
	StateHidden
	StateBad
)

func (s State) String() string {
	switch s {
	case StateFavorite:
		return "favorite"
	case StateHidden:
		return "hidden"
	case StateBad:
		return "bad"
	default:
		return "neither"
	}
}

// ResolveState maps an app to exactly one state. If the stored sets ever
// overlap, Bad wins over Favorite, which wins over Hidden.
func ResolveState(m prefs.Membership, id string) State {
	switch {
	case m.IsBad(id):
		return StateBad
	case m.IsFavorite(id):
		return StateFavorite
	case m.IsHidden(id):
		return StateHidden
	default:
		return StateNeither
	}
}
