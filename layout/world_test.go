package layout

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/scene"
)

func testSlice() scene.FrustumSlice {
	return scene.FrustumSlice{Width: 20, Height: 11.25, Depth: 0}
}

func TestProjectBoundaries(t *testing.T) {
	c := Compute(1920, 1080)
	wb := ProjectBoundaries(c.Boundaries(), 1920, testSlice())

	if !almostEqual(wb.LeftOuterLeft, -10, tolerance) {
		t.Errorf("left edge = %v, want -10", wb.LeftOuterLeft)
	}
	if !almostEqual(wb.RightOuterRight, 10, tolerance) {
		t.Errorf("right edge = %v, want 10", wb.RightOuterRight)
	}

	edges := []float64{
		wb.LeftOuterLeft, wb.LeftOuterRight, wb.LeftPortalLeft, wb.LeftPortalRight,
		wb.MiddleLeft, wb.MiddleRight, wb.RightPortalLeft, wb.RightPortalRight,
		wb.RightOuterLeft, wb.RightOuterRight,
	}
	for i, e := range edges {
		if e < -10-tolerance || e > 10+tolerance {
			t.Errorf("edge %d = %v, outside the slice", i, e)
		}
		if i > 0 && e < edges[i-1]-tolerance {
			t.Errorf("edge %d decreases: %v < %v", i, e, edges[i-1])
		}
	}

	// Symmetric columns mirror about the slice center.
	if !almostEqual(wb.MiddleLeft, -wb.MiddleRight, tolerance) {
		t.Errorf("middle gap not centered: [%v, %v]", wb.MiddleLeft, wb.MiddleRight)
	}
}

func TestProjectBoundariesClamps(t *testing.T) {
	// Boundaries computed for a wider viewport than the one projected
	// through land outside the slice and must be pulled back in.
	c := Compute(1920, 1080)
	wb := ProjectBoundaries(c.Boundaries(), 1000, testSlice())
	if wb.RightOuterRight > 10+tolerance {
		t.Errorf("right edge = %v, want clamped to 10", wb.RightOuterRight)
	}
}

func TestPortalPlacements(t *testing.T) {
	c := Compute(1920, 1080)
	slice := testSlice()
	left, right := PortalPlacements(c, 1920, 1080, slice)

	if !almostEqual(left.Center.X(), -right.Center.X(), tolerance) {
		t.Errorf("portal centers not mirrored: %v vs %v", left.Center.X(), right.Center.X())
	}
	if left.Center.X() >= right.Center.X() {
		t.Errorf("left portal %v is not left of right portal %v", left.Center.X(), right.Center.X())
	}
	for _, p := range []PortalPlacement{left, right} {
		if p.Center.Y() != 0 {
			t.Errorf("portal center Y = %v, want 0", p.Center.Y())
		}
		if p.Center.Z() != slice.Depth {
			t.Errorf("portal center Z = %v, want slice depth %v", p.Center.Z(), slice.Depth)
		}
	}

	wantHalfW := c.PortalWidth / 1920 * slice.Width / 2
	if !almostEqual(left.HalfWidth, wantHalfW, tolerance) {
		t.Errorf("half width = %v, want %v", left.HalfWidth, wantHalfW)
	}
	wantHalfH := c.PortalHeight / 1080 * slice.Height / 2
	if !almostEqual(left.HalfHeight, wantHalfH, tolerance) {
		t.Errorf("half height = %v, want %v", left.HalfHeight, wantHalfH)
	}
}

func TestPortalScaleFactor(t *testing.T) {
	f := PortalScaleFactor(160, 280, mgl64.Vec2{0.1, 0.2}, 1920, 1080)
	if !almostEqual(f.X(), 160.0/384.0, tolerance) {
		t.Errorf("x factor = %v, want %v", f.X(), 160.0/384.0)
	}
	if !almostEqual(f.Y(), 280.0/432.0, tolerance) {
		t.Errorf("y factor = %v, want %v", f.Y(), 280.0/432.0)
	}

	// Zero radii floor at epsilon instead of dividing by zero.
	z := PortalScaleFactor(160, 280, mgl64.Vec2{}, 1920, 1080)
	for i, v := range []float64{z.X(), z.Y()} {
		if math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
			t.Errorf("degenerate factor component %d = %v", i, v)
		}
	}
}
