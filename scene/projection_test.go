package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testTolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// squareCamera sits at z=10 with a 90 degree FOV and aspect 1, so the slice
// through the origin is exactly 20 world units tall.
func squareCamera() *Camera {
	return NewCamera(math.Pi/2, 1, 0.1, 100)
}

func TestFrustumSliceAt(t *testing.T) {
	cam := squareCamera()

	slice := cam.FrustumSliceAt(0)
	if !almostEqual(slice.Height, 20, testTolerance) {
		t.Errorf("height at depth 0 = %v, want 20", slice.Height)
	}
	if !almostEqual(slice.Width, 20, testTolerance) {
		t.Errorf("width at depth 0 = %v, want 20", slice.Width)
	}
	if slice.Depth != 0 {
		t.Errorf("slice depth = %v, want 0", slice.Depth)
	}
	if !almostEqual(slice.HalfWidth(), 10, testTolerance) {
		t.Errorf("half width = %v, want 10", slice.HalfWidth())
	}

	// A deeper plane subtends a larger slice.
	text := cam.FrustumSliceAt(-8)
	if !almostEqual(text.Height, 36, testTolerance) {
		t.Errorf("height at depth -8 = %v, want 36", text.Height)
	}

	// Distance is what matters, not sign: a plane behind the camera mirrors
	// the one the same distance in front.
	behind := cam.FrustumSliceAt(12)
	front := cam.FrustumSliceAt(8)
	if !almostEqual(behind.Height, front.Height, testTolerance) {
		t.Errorf("|distance| symmetry broken: %v vs %v", behind.Height, front.Height)
	}
}

func TestFrustumSliceMonotonicInDistance(t *testing.T) {
	cam := squareCamera()
	prev := 0.0
	for depth := 9.0; depth >= -30; depth -= 1.5 {
		h := cam.FrustumSliceAt(depth).Height
		if h <= prev {
			t.Fatalf("slice height not increasing with distance: %v then %v at depth %v", prev, h, depth)
		}
		prev = h
	}
}

func TestFrustumSliceWidescreen(t *testing.T) {
	cam := NewCamera(math.Pi/2, 16.0/9.0, 0.1, 100)
	slice := cam.FrustumSliceAt(0)
	if !almostEqual(slice.Width, slice.Height*16/9, testTolerance) {
		t.Errorf("width = %v, want height*16/9 = %v", slice.Width, slice.Height*16/9)
	}
}

func TestWorldToScreenUV(t *testing.T) {
	cam := squareCamera()

	center := cam.WorldToScreenUV(mgl64.Vec3{0, 0, 0})
	if !almostEqual(center.X(), 0.5, testTolerance) || !almostEqual(center.Y(), 0.5, testTolerance) {
		t.Errorf("origin uv = %v, want (0.5, 0.5)", center)
	}

	// Halfway to the right edge of the slice lands at u = 0.75.
	rightward := cam.WorldToScreenUV(mgl64.Vec3{5, 0, 0})
	if !almostEqual(rightward.X(), 0.75, testTolerance) {
		t.Errorf("u = %v, want 0.75", rightward.X())
	}
	if !almostEqual(rightward.Y(), 0.5, testTolerance) {
		t.Errorf("v = %v, want 0.5", rightward.Y())
	}

	// World +Y is screen-up, and screen-up means smaller v.
	upward := cam.WorldToScreenUV(mgl64.Vec3{0, 5, 0})
	if !almostEqual(upward.Y(), 0.25, testTolerance) {
		t.Errorf("v = %v, want 0.25", upward.Y())
	}
}

func TestCSSToWorld(t *testing.T) {
	slice := FrustumSlice{Width: 20, Height: 10, Depth: 0}

	tests := []struct {
		cssX float64
		want float64
	}{
		{0, -10},
		{500, 0},
		{1000, 10},
		{250, -5},
	}
	for _, tt := range tests {
		if got := CSSToWorldX(tt.cssX, 1000, slice); !almostEqual(got, tt.want, testTolerance) {
			t.Errorf("CSSToWorldX(%v) = %v, want %v", tt.cssX, got, tt.want)
		}
	}

	// CSS y grows downward, world y grows upward.
	if got := CSSToWorldY(0, 800, slice); !almostEqual(got, 5, testTolerance) {
		t.Errorf("CSSToWorldY(0) = %v, want 5", got)
	}
	if got := CSSToWorldY(800, 800, slice); !almostEqual(got, -5, testTolerance) {
		t.Errorf("CSSToWorldY(800) = %v, want -5", got)
	}

	if got := CSSLengthToWorldX(250, 1000, slice); !almostEqual(got, 5, testTolerance) {
		t.Errorf("CSSLengthToWorldX(250) = %v, want 5", got)
	}
	if got := CSSLengthToWorldY(200, 800, slice); !almostEqual(got, 2.5, testTolerance) {
		t.Errorf("CSSLengthToWorldY(200) = %v, want 2.5", got)
	}
}

func TestCSSToWorldDegenerateViewport(t *testing.T) {
	slice := FrustumSlice{Width: 20, Height: 10}
	for _, got := range []float64{
		CSSToWorldX(500, 0, slice),
		CSSToWorldY(400, 0, slice),
		CSSLengthToWorldX(100, 0, slice),
	} {
		if math.IsInf(got, 0) || math.IsNaN(got) {
			t.Errorf("zero viewport produced %v, want finite", got)
		}
	}
}

func TestClampToSlice(t *testing.T) {
	slice := FrustumSlice{Width: 20, Height: 10}
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{9.5, 9.5},
		{-9.5, -9.5},
		{15, 10},
		{-15, -10},
	}
	for _, tt := range tests {
		if got := ClampToSlice(tt.in, slice); got != tt.want {
			t.Errorf("ClampToSlice(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHoleRadii(t *testing.T) {
	r := HoleRadii(1000, 1000)
	if !almostEqual(r.X(), 0.125, testTolerance) {
		t.Errorf("rx = %v, want 0.125", r.X())
	}
	if !almostEqual(r.Y(), 0.2, testTolerance) {
		t.Errorf("ry = %v, want 0.2", r.Y())
	}

	// Tiny viewports cap at the maxima, huge ones floor at the minima.
	small := HoleRadii(100, 100)
	if small.X() != 0.17 || small.Y() != 0.5 {
		t.Errorf("small viewport radii = %v, want (0.17, 0.5)", small)
	}
	big := HoleRadii(10000, 10000)
	if big.X() != 0.05 || big.Y() != 0.05 {
		t.Errorf("big viewport radii = %v, want (0.05, 0.05)", big)
	}

	zero := HoleRadii(0, 0)
	for _, v := range []float64{zero.X(), zero.Y()} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("zero viewport radius = %v, want finite", v)
		}
	}
}

func TestUpdateAspectRatioGuardsZeroHeight(t *testing.T) {
	cam := squareCamera()
	cam.UpdateAspectRatio(800, 0)
	if cam.AspectRatio != 1 {
		t.Errorf("aspect = %v, want unchanged 1", cam.AspectRatio)
	}
	cam.UpdateAspectRatio(800, 400)
	if !almostEqual(cam.AspectRatio, 2, testTolerance) {
		t.Errorf("aspect = %v, want 2", cam.AspectRatio)
	}
}
