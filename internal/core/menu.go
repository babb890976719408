package core

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/apps"
	"github.com/chess10kp/cleanlauncher/internal/launcher"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

// showAppMenu pops up the context menu for rec next to anchor.
func (a *App) showAppMenu(view launcher.View, rec apps.AppRecord, anchor gtk.IWidget) {
	popover, err := gtk.PopoverNew(anchor)
	if err != nil {
		log.Printf("[MENU] Failed to create popover: %v", err)
		return
	}
	popover.SetPosition(gtk.POS_BOTTOM)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		log.Printf("[MENU] Failed to create menu box: %v", err)
		return
	}

	for _, action := range launcher.MenuActions(view, rec.State) {
		action := action
		item, err := gtk.ButtonNewWithLabel(action.Label())
		if err != nil {
			continue
		}
		item.SetRelief(gtk.RELIEF_NONE)
		item.Connect("clicked", func() {
			popover.Popdown()
			a.runMenuAction(action, rec)
		})
		box.PackStart(item, false, false, 0)
	}

	popover.Add(box)
	box.ShowAll()
	popover.Popup()
}

func (a *App) runMenuAction(action launcher.MenuAction, rec apps.AppRecord) {
	switch action {
	case launcher.ActionRename:
		a.showRenameDialog(rec)
		return
	case launcher.ActionAppInfo:
		a.showAppInfo(rec)
		return
	case launcher.ActionSettings:
		a.ShowScreen(ScreenSettings)
		return
	}

	toast, err := launcher.Apply(a.prefs, action, rec)
	if err != nil {
		log.Printf("[MENU] %v", err)
		a.toast.Show("Could not save change")
		return
	}
	a.toast.Show(toast)
}

// showRenameDialog asks for a new name. Blank input leaves the old name.
func (a *App) showRenameDialog(rec apps.AppRecord) {
	dialog, err := gtk.DialogNew()
	if err != nil {
		log.Printf("[MENU] Error creating rename dialog: %v", err)
		return
	}
	defer dialog.Destroy()

	dialog.SetTitle("Rename App")
	dialog.SetTransientFor(a.window)
	dialog.SetModal(true)
	dialog.AddButton("_Cancel", gtk.RESPONSE_CANCEL)
	dialog.AddButton("_OK", gtk.RESPONSE_OK)
	dialog.SetDefaultResponse(gtk.RESPONSE_OK)

	contentArea, err := dialog.GetContentArea()
	if err != nil {
		return
	}

	entry, err := gtk.EntryNew()
	if err != nil {
		return
	}
	entry.SetText(rec.DisplayName())
	entry.SetMarginTop(10)
	entry.SetMarginBottom(10)
	entry.SetMarginStart(10)
	entry.SetMarginEnd(10)
	entry.Connect("activate", func() {
		dialog.Response(gtk.RESPONSE_OK)
	})
	contentArea.PackStart(entry, true, true, 0)
	dialog.ShowAll()

	if dialog.Run() != gtk.RESPONSE_OK {
		return
	}

	name, err := entry.GetText()
	if err != nil {
		return
	}
	toast, err := launcher.Rename(a.prefs, rec, name)
	switch {
	case errors.Is(err, prefs.ErrBlankName):
		log.Printf("[MENU] Ignoring blank name for %s", rec.ID)
	case err != nil:
		log.Printf("[MENU] Failed to rename %s: %v", rec.ID, err)
		a.toast.Show("Could not save change")
	default:
		a.toast.Show(toast)
	}
}

func (a *App) showAppInfo(rec apps.AppRecord) {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", rec.ID)
	if rec.CustomName != "" {
		fmt.Fprintf(&b, "Name: %s (%s)\n", rec.CustomName, rec.Label)
	}
	if rec.Comment != "" {
		fmt.Fprintf(&b, "%s\n", rec.Comment)
	}
	fmt.Fprintf(&b, "State: %s\nExec: %s\nFile: %s", rec.State, rec.Exec, rec.File)

	dialog := gtk.MessageDialogNew(a.window, gtk.DIALOG_MODAL, gtk.MESSAGE_INFO, gtk.BUTTONS_OK, "%s", b.String())
	dialog.SetTitle(rec.DisplayName())
	defer dialog.Destroy()
	dialog.Run()
}
