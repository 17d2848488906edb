package site

import (
	"math"

	"portal-site/anim"
)

// wheelStepPx is the scroll distance of one wheel notch, in CSS pixels.
const wheelStepPx = 120.0

// ScrollTracker is the scroll host. It accumulates wheel and key input
// inside a pinned region pinScreens viewport-heights tall and exposes the
// [0,1] progress the timeline consumes. Travel inside the region is
// (pinScreens-1) viewport heights.
type ScrollTracker struct {
	pinScreens float64
	viewportH  float64
	offset     float64 // distance scrolled into the pinned region, CSS px
}

func NewScrollTracker(pinScreens, viewportH float64) *ScrollTracker {
	if pinScreens <= 1 {
		pinScreens = defaultPinScreens
	}
	return &ScrollTracker{
		pinScreens: pinScreens,
		viewportH:  math.Max(viewportH, 1),
	}
}

func (s *ScrollTracker) span() float64 {
	return math.Max((s.pinScreens-1)*s.viewportH, 1e-6)
}

// AddWheel feeds one wheel event. Positive yoff (wheel up) scrolls back
// toward the top of the region.
func (s *ScrollTracker) AddWheel(yoff float64) {
	if math.IsNaN(yoff) {
		return
	}
	s.SetOffset(s.offset - yoff*wheelStepPx)
}

// ScrollBy moves by a pixel delta (keyboard paging).
func (s *ScrollTracker) ScrollBy(px float64) {
	s.SetOffset(s.offset + px)
}

// SetOffset jumps to an absolute position, clamped to the pinned travel.
func (s *ScrollTracker) SetOffset(px float64) {
	if math.IsNaN(px) {
		px = 0
	}
	s.offset = anim.Clamp(px, 0, s.span())
}

// SetProgress jumps to a progress fraction (Home and End keys).
func (s *ScrollTracker) SetProgress(p float64) {
	if math.IsNaN(p) {
		p = 0
	}
	s.offset = anim.Clamp(p, 0, 1) * s.span()
}

// Progress is the clamped position inside the pinned travel.
func (s *ScrollTracker) Progress() float64 {
	p := s.offset / s.span()
	if math.IsNaN(p) {
		return 0
	}
	return anim.Clamp(p, 0, 1)
}

// Resize rescales the travel with the viewport while keeping progress
// stable, so a window resize never teleports the animation.
func (s *ScrollTracker) Resize(viewportH float64) {
	p := s.Progress()
	s.viewportH = math.Max(viewportH, 1)
	s.offset = p * s.span()
}
