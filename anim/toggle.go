package anim

import (
	"time"
)

// PortalPhase is the portal open/close cycle position.
type PortalPhase int

const (
	PhaseClosed PortalPhase = iota
	PhaseOpening
	PhaseOpen
	PhaseClosing
)

func (p PortalPhase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	}
	return "unknown"
}

// SpreadTween drives a portal's door spread between closed (spread 1) and
// open (spread 0) over a fixed duration. While a transition is running,
// further toggle requests are dropped rather than queued.
type SpreadTween struct {
	Duration time.Duration

	elapsed   time.Duration
	from, to  float64
	spread    float64
	open      bool
	animating bool
}

// NewSpreadTween returns a tween resting in the closed state.
func NewSpreadTween(duration time.Duration) *SpreadTween {
	return &SpreadTween{
		Duration: duration,
		spread:   1,
	}
}

// Toggle requests a transition to the opposite resting state. It reports
// whether the request was accepted; a toggle during a running transition is
// silently dropped.
func (s *SpreadTween) Toggle() bool {
	if s.animating {
		return false
	}
	s.animating = true
	s.elapsed = 0
	s.from = s.spread
	if s.open {
		s.to = 1
	} else {
		s.to = 0
	}
	return true
}

// Update advances a running transition by dt. On completion the resting state
// flips and the animating flag clears in the same tick.
func (s *SpreadTween) Update(dt time.Duration) {
	if !s.animating {
		return
	}
	s.elapsed += dt
	t := normalize(s.elapsed, s.Duration)
	s.spread = Lerp(s.from, s.to, EaseInOutCubic(t))
	if t >= 1 {
		s.spread = s.to
		s.open = s.to == 0
		s.animating = false
	}
}

// Spread is the current door spread, 1 fully closed to 0 fully open.
func (s *SpreadTween) Spread() float64 { return s.spread }

// IsOpen reports the resting state most recently reached.
func (s *SpreadTween) IsOpen() bool { return s.open }

// Animating reports whether a transition is in flight.
func (s *SpreadTween) Animating() bool { return s.animating }

// Phase derives the four-phase cycle position from the resting and animating
// flags.
func (s *SpreadTween) Phase() PortalPhase {
	switch {
	case s.animating && s.open:
		return PhaseClosing
	case s.animating:
		return PhaseOpening
	case s.open:
		return PhaseOpen
	}
	return PhaseClosed
}

func normalize(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(duration)
	return Clamp(t, 0, 1)
}
