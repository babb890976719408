package launcher

import (
	"log"
	"sync"
	"time"
)

// DefaultHoldThreshold is how long a Bad app must be held before it opens.
const DefaultHoldThreshold = 7 * time.Second

// GateState is the phase of a HoldGate.
type GateState int

const (
	GateIdle GateState = iota
	GatePressing
	GateFired
)

func (s GateState) String() string {
	switch s {
	case GatePressing:
		return "pressing"
	case GateFired:
		return "fired"
	default:
		return "idle"
	}
}

// HoldGate fires an action only after an uninterrupted hold of at least the
// threshold. At most one timer is pending at a time.
type HoldGate struct {
	scheduler Scheduler
	threshold time.Duration
	action    func()

	mu     sync.Mutex
	state  GateState
	cancel func()
	// gen identifies the current press; a timer from an older press that
	// slipped past cancel must not fire.
	gen uint64
}

func NewHoldGate(s Scheduler, threshold time.Duration, action func()) *HoldGate {
	if threshold <= 0 {
		threshold = DefaultHoldThreshold
	}
	return &HoldGate{
		scheduler: s,
		threshold: threshold,
		action:    action,
	}
}

// Press starts a hold, cancelling any pending one first.
func (g *HoldGate) Press() {
	g.mu.Lock()
	g.stopLocked()
	g.gen++
	gen := g.gen
	g.state = GatePressing
	g.cancel = g.scheduler.AfterFunc(g.threshold, func() { g.fire(gen) })
	g.mu.Unlock()
}

func (g *HoldGate) fire(gen uint64) {
	g.mu.Lock()
	if g.gen != gen || g.state != GatePressing {
		g.mu.Unlock()
		return
	}
	g.state = GateFired
	g.cancel = nil
	g.mu.Unlock()

	g.action()
}

// Release ends a hold. Before the threshold this cancels the action; after
// it, the gate simply returns to idle.
func (g *HoldGate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.state = GateIdle
}

// Cancel is Release for interrupted gestures, such as the pointer leaving
// the row.
func (g *HoldGate) Cancel() {
	g.Release()
}

func (g *HoldGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *HoldGate) stopLocked() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// HoldGates keeps one gate per app id for a screen.
type HoldGates struct {
	scheduler Scheduler
	threshold time.Duration

	mu    sync.Mutex
	gates map[string]*HoldGate
}

func NewHoldGates(s Scheduler, threshold time.Duration) *HoldGates {
	return &HoldGates{
		scheduler: s,
		threshold: threshold,
		gates:     make(map[string]*HoldGate),
	}
}

// Press starts a hold on id. action replaces whatever the gate ran before.
func (h *HoldGates) Press(id string, action func()) {
	h.mu.Lock()
	g, ok := h.gates[id]
	if !ok {
		g = NewHoldGate(h.scheduler, h.threshold, nil)
		h.gates[id] = g
	}
	h.mu.Unlock()

	g.Release()
	g.mu.Lock()
	g.action = action
	g.mu.Unlock()
	g.Press()
	log.Printf("[HOLD-GATE] Holding %s for %v", id, g.threshold)
}

func (h *HoldGates) Release(id string) {
	h.mu.Lock()
	g, ok := h.gates[id]
	h.mu.Unlock()
	if ok {
		g.Release()
	}
}

// State reports the gate phase for id; unknown ids are idle.
func (h *HoldGates) State(id string) GateState {
	h.mu.Lock()
	g, ok := h.gates[id]
	h.mu.Unlock()
	if !ok {
		return GateIdle
	}
	return g.State()
}

// Active reports whether any gate is mid-hold.
func (h *HoldGates) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, g := range h.gates {
		if g.State() == GatePressing {
			return true
		}
	}
	return false
}

// CancelAll releases every gate. Screens call it when they are left.
func (h *HoldGates) CancelAll() {
	h.mu.Lock()
	gates := h.gates
	h.gates = make(map[string]*HoldGate)
	h.mu.Unlock()

	for _, g := range gates {
		g.Release()
	}
}
