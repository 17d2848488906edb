package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
)

// Background is the full-screen swirl layer behind the portals, with two
// elliptical holes cut where the portals sit. It never derives its own
// placement: the per-frame sync pushes the portal screen-UV centers in after
// portal world transforms settle, so data flows one way.
type Background struct {
	LeftFocal  mgl64.Vec2
	RightFocal mgl64.Vec2
	HoleRadii  mgl64.Vec2 // base semi-axes in screen UV
	HoleScale  float64    // scroll-driven hole reveal, 0 closed to 1 full
	Fade       float64    // scroll-hint overlay opacity, 1 at rest
	Time       float64    // seconds, drives the swirl motion

	ColorDark  core.Color
	ColorLight core.Color

	// GPUData is set by the renderer backend.
	GPUData interface{}
}

func NewBackground(palette core.Palette) *Background {
	return &Background{
		LeftFocal:  mgl64.Vec2{0.25, 0.5},
		RightFocal: mgl64.Vec2{0.75, 0.5},
		HoleRadii:  mgl64.Vec2{0.1, 0.25},
		Fade:       1,
		ColorDark:  palette.SwirlDark,
		ColorLight: palette.SwirlLight,
	}
}

// SetFocalPoints pulls the two portal screen-UV centers into the background.
// This is the only write path for focal data.
func (b *Background) SetFocalPoints(left, right mgl64.Vec2) {
	b.LeftFocal = left
	b.RightFocal = right
}

// SetHoleRadii sets the base hole semi-axes in screen UV.
func (b *Background) SetHoleRadii(radii mgl64.Vec2) {
	b.HoleRadii = radii
}

// Advance moves the swirl clock forward.
func (b *Background) Advance(dt float64) {
	b.Time += dt
}
