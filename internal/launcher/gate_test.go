package launcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		run   func(g *HoldGate, s *manualScheduler)
		fires int
	}{
		{
			name: "held past threshold fires once",
			run: func(g *HoldGate, s *manualScheduler) {
				g.Press()
				s.Advance(8 * time.Second)
				g.Release()
				s.Advance(time.Minute)
			},
			fires: 1,
		},
		{
			name: "held exactly threshold fires",
			run: func(g *HoldGate, s *manualScheduler) {
				g.Press()
				s.Advance(7 * time.Second)
				g.Release()
			},
			fires: 1,
		},
		{
			name: "released early fires zero times",
			run: func(g *HoldGate, s *manualScheduler) {
				g.Press()
				s.Advance(6 * time.Second)
				g.Release()
				s.Advance(time.Minute)
			},
			fires: 0,
		},
		{
			name: "re-press cancels previous timer",
			run: func(g *HoldGate, s *manualScheduler) {
				g.Press()
				s.Advance(5 * time.Second)
				g.Press()
				s.Advance(8 * time.Second)
				g.Release()
			},
			fires: 1,
		},
		{
			name: "cancelled gesture fires zero times",
			run: func(g *HoldGate, s *manualScheduler) {
				g.Press()
				s.Advance(3 * time.Second)
				g.Cancel()
				s.Advance(10 * time.Second)
			},
			fires: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newManualScheduler(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
			fired := 0
			g := NewHoldGate(s, 7*time.Second, func() { fired++ })

			tt.run(g, s)

			assert.Equal(t, tt.fires, fired)
			assert.Equal(t, GateIdle, g.State())
			assert.Zero(t, s.Pending())
		})
	}
}

func TestHoldGateStates(t *testing.T) {
	t.Parallel()

	s := newManualScheduler(time.Now())
	g := NewHoldGate(s, 0, func() {})

	assert.Equal(t, GateIdle, g.State())
	g.Press()
	assert.Equal(t, GatePressing, g.State())
	s.Advance(DefaultHoldThreshold)
	assert.Equal(t, GateFired, g.State())
	g.Release()
	assert.Equal(t, GateIdle, g.State())
}

func TestHoldGatesPerApp(t *testing.T) {
	t.Parallel()

	s := newManualScheduler(time.Now())
	gates := NewHoldGates(s, 7*time.Second)
	launched := map[string]int{}

	gates.Press("a", func() { launched["a"]++ })
	gates.Press("b", func() { launched["b"]++ })
	s.Advance(2 * time.Second)
	gates.Release("a")
	s.Advance(6 * time.Second)

	assert.Equal(t, 0, launched["a"])
	assert.Equal(t, 1, launched["b"])
	assert.Equal(t, GateFired, gates.State("b"))

	gates.Press("a", func() { launched["a"]++ })
	gates.CancelAll()
	s.Advance(time.Minute)

	assert.Equal(t, 0, launched["a"])
	assert.Equal(t, GateIdle, gates.State("a"))
	assert.Zero(t, s.Pending())
}

func TestHoldGatesActive(t *testing.T) {
	t.Parallel()

	s := newManualScheduler(time.Now())
	gates := NewHoldGates(s, 7*time.Second)
	assert.False(t, gates.Active())

	gates.Press("a", func() {})
	assert.True(t, gates.Active())

	s.Advance(7 * time.Second)
	assert.False(t, gates.Active(), "a fired gate is no longer mid-hold")

	gates.Press("b", func() {})
	gates.Release("b")
	assert.False(t, gates.Active())
}
