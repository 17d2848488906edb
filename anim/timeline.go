package anim

import (
	"math"
)

// Scroll phase boundaries. The pinned scroll range is normalized to [0, 1];
// these constants carve it into the zoom phase, the rotation/scale phase and
// the side-text reveal.
const (
	zoomPhaseEnd   = 0.2
	sideTextStart  = 0.4
	scrollFadeEnd  = 0.1
	rotationTarget = -math.Pi / 4
	sideTextPow    = 0.7
)

// Frame is the complete set of scroll-derived animation values for one tick.
// Every consumer reads from here; nothing re-derives its own curve from raw
// scroll progress.
type Frame struct {
	// TextZoom scales the hero text from 1 to 1.2 across the zoom phase and
	// holds there.
	TextZoom float64
	// Rotation is the hero group rotation in radians, 0 to -pi/4. It
	// completes by a quarter of the second phase.
	Rotation float64
	// GroupScale shrinks the hero group from 1 to 0 across the remainder of
	// the second phase.
	GroupScale float64
	// PortalScale reveals the portals from 0 to 1, locked to the inverse of
	// GroupScale.
	PortalScale float64
	// HoleScale opens the background holes, locked to PortalScale.
	HoleScale float64
	// SideText is the side-panel reveal progress, 0 to 1, stretched so the
	// early range moves faster than the tail.
	SideText float64
	// SideTextEase is SideText run through Smoothstep, used for positions.
	SideTextEase float64
	// ScrollFade is the scroll-hint opacity, fading out over the first tenth
	// of the range.
	ScrollFade float64
}

// Timeline maps normalized scroll progress onto a Frame. It is a pure state
// machine: the same progress always yields the same frame, and progress zero
// always routes through Reset so re-entry lands on canonical defaults rather
// than on accumulated tween state.
type Timeline struct {
	progress float64
	frame    Frame
}

func NewTimeline() *Timeline {
	t := &Timeline{}
	t.Reset()
	return t
}

// Reset snaps every animated value to its progress-zero default. This is the
// single canonical initial state; Advance(0) and Reset are indistinguishable.
func (t *Timeline) Reset() {
	t.progress = 0
	t.frame = Frame{
		TextZoom:   1,
		GroupScale: 1,
		ScrollFade: 1,
	}
}

// Progress returns the last clamped progress fed to Advance.
func (t *Timeline) Progress() float64 { return t.progress }

// Current returns the frame computed by the last Advance.
func (t *Timeline) Current() Frame { return t.frame }

// Advance recomputes the frame for the given scroll progress. NaN and
// out-of-range values are clamped before use.
func (t *Timeline) Advance(progress float64) Frame {
	if math.IsNaN(progress) {
		progress = 0
	}
	progress = Clamp(progress, 0, 1)
	if progress == 0 {
		t.Reset()
		return t.frame
	}
	t.progress = progress
	t.frame = evaluate(progress)
	return t.frame
}

func evaluate(p float64) Frame {
	var f Frame

	// ── phase A: hero text zoom ──
	f.TextZoom = 1 + 0.2*Clamp(p/zoomPhaseEnd, 0, 1)

	// ── phase B/C: rotation then scale-down, on the second-phase axis ──
	phase2 := Clamp((p-zoomPhaseEnd)/(1-zoomPhaseEnd), 0, 1)
	f.Rotation = rotationTarget * math.Min(phase2*4, 1)

	scaleProgress := math.Max(phase2-0.25, 0) / 0.75
	f.GroupScale = 1 - scaleProgress

	// ── phase D: portal reveal, locked to the group scale-down ──
	f.PortalScale = scaleProgress
	f.HoleScale = scaleProgress

	// ── side panels ──
	raw := Clamp((p-sideTextStart)/(1-sideTextStart), 0, 1)
	f.SideText = math.Pow(raw, sideTextPow)
	f.SideTextEase = Smoothstep(f.SideText)

	// ── scroll hint ──
	f.ScrollFade = 1 - Clamp(p/scrollFadeEnd, 0, 1)
	return f
}
