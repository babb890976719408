package launcher

import (
	"errors"
	"fmt"
	"log"

	"github.com/chess10kp/cleanlauncher/internal/apps"
)

// ErrInteractive is returned by Apply for actions the screen must handle
// itself, such as opening a dialog.
var ErrInteractive = errors.New("menu action needs user interaction")

// MenuAction is one entry of an app's context menu.
type MenuAction int

const (
	ActionAddFavorite MenuAction = iota
	ActionRemoveFavorite
	ActionRename
	ActionHide
	ActionUnhide
	ActionMarkBad
	ActionUnmarkBad
	ActionAppInfo
	ActionSettings
)

func (a MenuAction) Label() string {
	switch a {
	case ActionAddFavorite:
		return "Add to Favorites"
	case ActionRemoveFavorite:
		return "Remove from Favorites"
	case ActionRename:
		return "Rename"
	case ActionHide:
		return "Hide App"
	case ActionUnhide:
		return "Unhide App"
	case ActionMarkBad:
		return "Mark as Bad"
	case ActionUnmarkBad:
		return "Unmark Bad"
	case ActionAppInfo:
		return "App Info"
	case ActionSettings:
		return "Settings"
	default:
		return ""
	}
}

// StateStore is the part of the preference store menu actions write to.
type StateStore interface {
	AddFavorite(id string) error
	RemoveFavorite(id string) error
	HideApp(id string) error
	UnhideApp(id string) error
	MarkAsBad(id string) error
	UnmarkBad(id string) error
	SetCustomName(id, name string) error
}

// MenuActions lists the entries offered for an app with state s in view v.
func MenuActions(v View, s apps.State) []MenuAction {
	favorite := ActionAddFavorite
	if s == apps.StateFavorite {
		favorite = ActionRemoveFavorite
	}
	bad := ActionMarkBad
	if s == apps.StateBad {
		bad = ActionUnmarkBad
	}

	if v == ViewSettings {
		hide := ActionHide
		if s == apps.StateHidden {
			hide = ActionUnhide
		}
		return []MenuAction{favorite, hide, bad, ActionRename, ActionAppInfo}
	}

	return []MenuAction{favorite, ActionRename, ActionHide, bad, ActionSettings}
}

// Apply performs a state-changing action and returns the toast to show.
func Apply(store StateStore, action MenuAction, rec apps.AppRecord) (string, error) {
	name := rec.DisplayName()

	var (
		err   error
		toast string
	)
	switch action {
	case ActionAddFavorite:
		err = store.AddFavorite(rec.ID)
		toast = fmt.Sprintf("%s added to favorites", name)
	case ActionRemoveFavorite:
		err = store.RemoveFavorite(rec.ID)
		toast = fmt.Sprintf("%s removed from favorites", name)
	case ActionHide:
		err = store.HideApp(rec.ID)
		toast = fmt.Sprintf("%s hidden", name)
	case ActionUnhide:
		err = store.UnhideApp(rec.ID)
		toast = fmt.Sprintf("%s is now visible", name)
	case ActionMarkBad:
		err = store.MarkAsBad(rec.ID)
		toast = fmt.Sprintf("%s marked as bad", name)
	case ActionUnmarkBad:
		err = store.UnmarkBad(rec.ID)
		toast = fmt.Sprintf("%s is no longer bad", name)
	default:
		return "", fmt.Errorf("%w: %s", ErrInteractive, action.Label())
	}

	if err != nil {
		return "", fmt.Errorf("failed to %s %s: %w", action.Label(), rec.ID, err)
	}
	log.Printf("[MENU] %s: %s", action.Label(), rec.ID)
	return toast, nil
}

// Rename stores a custom name. Blank names are rejected by the store.
func Rename(store StateStore, rec apps.AppRecord, name string) (string, error) {
	if err := store.SetCustomName(rec.ID, name); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s renamed", rec.DisplayName()), nil
}
