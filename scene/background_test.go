package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/core"
)

func TestBackgroundDefaults(t *testing.T) {
	b := NewBackground(core.DefaultPalette())
	if b.Fade != 1 {
		t.Errorf("fade = %v, want 1 at rest", b.Fade)
	}
	if b.HoleScale != 0 {
		t.Errorf("hole scale = %v, want 0 at rest", b.HoleScale)
	}
	if b.Time != 0 {
		t.Errorf("time = %v, want 0", b.Time)
	}
}

func TestBackgroundFollowsFocalWrites(t *testing.T) {
	b := NewBackground(core.DefaultPalette())

	left := mgl64.Vec2{0.3, 0.45}
	right := mgl64.Vec2{0.7, 0.45}
	b.SetFocalPoints(left, right)
	if b.LeftFocal != left || b.RightFocal != right {
		t.Errorf("focal points = %v %v, want %v %v", b.LeftFocal, b.RightFocal, left, right)
	}

	radii := mgl64.Vec2{0.12, 0.3}
	b.SetHoleRadii(radii)
	if b.HoleRadii != radii {
		t.Errorf("hole radii = %v, want %v", b.HoleRadii, radii)
	}

	b.Advance(0.25)
	b.Advance(0.25)
	if b.Time != 0.5 {
		t.Errorf("time = %v, want 0.5", b.Time)
	}
}
