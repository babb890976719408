// Package layer binds the parts of gtk-layer-shell the launcher window uses
// to sit above regular windows on wlroots compositors.
package layer

/*
#cgo pkg-config: gtk-layer-shell-0
#include <stdlib.h>
#include <gtk-layer-shell.h>
*/
import "C"
import "unsafe"

// IsSupported reports whether the running compositor speaks the layer
// shell protocol. It is false under X11.
func IsSupported() bool {
	return C.gtk_layer_is_supported() != 0
}

// InitForWindow turns window into a layer surface. It must run before the
// window is realized.
func InitForWindow(window unsafe.Pointer) {
	C.gtk_layer_init_for_window((*C.GtkWindow)(window))
}

// SetNamespace names the surface for compositor rules.
func SetNamespace(window unsafe.Pointer, namespace string) {
	cs := C.CString(namespace)
	defer C.free(unsafe.Pointer(cs))
	C.gtk_layer_set_namespace((*C.GtkWindow)(window), cs)
}

func SetLayer(window unsafe.Pointer, layer Layer) {
	C.gtk_layer_set_layer((*C.GtkWindow)(window), C.GtkLayerShellLayer(layer))
}

// SetAnchor pins the surface to edge. Anchoring opposite edges stretches it.
func SetAnchor(window unsafe.Pointer, edge Edge, anchorTo bool) {
	var anchor C.gboolean
	if anchorTo {
		anchor = 1
	}
	C.gtk_layer_set_anchor((*C.GtkWindow)(window), C.GtkLayerShellEdge(edge), anchor)
}

// SetExclusiveZone reserves zone pixels along the anchored edge; 0 lets
// other surfaces overlap.
func SetExclusiveZone(window unsafe.Pointer, zone int) {
	C.gtk_layer_set_exclusive_zone((*C.GtkWindow)(window), C.int(zone))
}

func SetKeyboardMode(window unsafe.Pointer, mode KeyboardMode) {
	C.gtk_layer_set_keyboard_mode((*C.GtkWindow)(window), C.GtkLayerShellKeyboardMode(mode))
}

type Layer int

const (
	LayerBackground Layer = 0
	LayerBottom     Layer = 1
	LayerTop        Layer = 2
	LayerOverlay    Layer = 3
)

type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

type KeyboardMode int

const (
	KeyboardModeNone      KeyboardMode = 0
	KeyboardModeExclusive KeyboardMode = 1
	KeyboardModeOnDemand  KeyboardMode = 2
)
