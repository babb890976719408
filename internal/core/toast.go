package core

import (
	"fmt"
	"time"

	"github.com/gotk3/gotk3/gtk"

	"github.com/chess10kp/cleanlauncher/internal/launcher"
)

const toastDuration = 2 * time.Second

// Toast is a transient message shown at the bottom of the window.
type Toast struct {
	revealer  *gtk.Revealer
	label     *gtk.Label
	scheduler launcher.Scheduler
	cancel    func()
}

func NewToast(s launcher.Scheduler) (*Toast, error) {
	revealer, err := gtk.RevealerNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create toast revealer: %w", err)
	}
	revealer.SetTransitionType(gtk.REVEALER_TRANSITION_TYPE_CROSSFADE)
	revealer.SetVAlign(gtk.ALIGN_END)
	revealer.SetHAlign(gtk.ALIGN_CENTER)

	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create toast box: %w", err)
	}
	addClass(box, "toast")

	label, err := gtk.LabelNew("")
	if err != nil {
		return nil, fmt.Errorf("failed to create toast label: %w", err)
	}
	box.PackStart(label, false, false, 0)
	revealer.Add(box)

	return &Toast{revealer: revealer, label: label, scheduler: s}, nil
}

func (t *Toast) Widget() gtk.IWidget {
	return t.revealer
}

// Show replaces any visible message.
func (t *Toast) Show(message string) {
	if t.cancel != nil {
		t.cancel()
	}
	t.label.SetText(message)
	t.revealer.ShowAll()
	t.revealer.SetRevealChild(true)
	t.cancel = t.scheduler.AfterFunc(toastDuration, func() {
		t.cancel = nil
		t.revealer.SetRevealChild(false)
	})
}
