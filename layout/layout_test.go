package layout

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want Category
	}{
		{"phone", 375, 812, Mobile},
		{"mobile breakpoint inclusive", 600, 800, Mobile},
		{"flat but narrow is still mobile", 600, 200, Mobile},
		{"just past the breakpoint", 600.5, 800, Portrait},
		{"square counts as portrait", 801, 801, Portrait},
		{"tablet portrait", 768, 1024, Portrait},
		{"desktop", 1920, 1080, Landscape},
		{"barely landscape", 801, 800, Landscape},
		{"zero height", 800, 0, Landscape},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.w, tt.h); got != tt.want {
			t.Errorf("%s: CategoryFor(%v, %v) = %v, want %v", tt.name, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestComputeDocumentedViewports(t *testing.T) {
	t.Run("1920x1080 landscape", func(t *testing.T) {
		c := Compute(1920, 1080)
		if c.Category != Landscape {
			t.Fatalf("category = %v, want Landscape", c.Category)
		}
		// Full transition factor: width/2/6.
		if !almostEqual(c.PortalWidth, 160, tolerance) {
			t.Errorf("portal width = %v, want 160", c.PortalWidth)
		}
		if c.Rescaled {
			t.Error("reference landscape viewport must not trip the rescale branch")
		}
	})

	t.Run("600x800 portrait boundary", func(t *testing.T) {
		c := Compute(600.000001, 800)
		if c.Category != Portrait {
			t.Fatalf("category = %v, want Portrait", c.Category)
		}
		// Zero transition factor: the documented 600/3 minimum.
		if !almostEqual(c.PortalWidth, 200, 1e-6) {
			t.Errorf("portal width = %v, want 200", c.PortalWidth)
		}
		if c.Rescaled {
			t.Error("boundary portrait viewport must not trip the rescale branch")
		}
	})

	t.Run("375x812 mobile", func(t *testing.T) {
		c := Compute(375, 812)
		if c.Category != Mobile {
			t.Fatalf("category = %v, want Mobile", c.Category)
		}
		if !almostEqual(c.PortalWidth, 125, tolerance) {
			t.Errorf("portal width = %v, want 125", c.PortalWidth)
		}
		if !almostEqual(c.PortalHeight, 365.4, tolerance) {
			t.Errorf("portal height = %v, want 365.4", c.PortalHeight)
		}
	})

	t.Run("tall mobile hits the height cap", func(t *testing.T) {
		c := Compute(500, 1200)
		if !almostEqual(c.PortalHeight, 406, tolerance) {
			t.Errorf("portal height = %v, want capped 406", c.PortalHeight)
		}
	})
}

func TestPortalWidthInterpolation(t *testing.T) {
	// Halfway between the breakpoints the width is the midpoint of min/max.
	mid := (MobileMaxWidth + ReferenceWidth) / 2
	c := Compute(mid, 5000) // portrait
	want := (200.0 + 320.0) / 2
	if !almostEqual(c.PortalWidth, want, tolerance) {
		t.Errorf("portrait portal width at midpoint = %v, want %v", c.PortalWidth, want)
	}

	// Beyond the reference width growth resumes proportionally and is
	// continuous at the breakpoint.
	atRef := Compute(1920, 5000).PortalWidth
	justPast := Compute(1920.001, 5000).PortalWidth
	if math.Abs(atRef-justPast) > 0.001 {
		t.Errorf("portal width discontinuous at reference width: %v vs %v", atRef, justPast)
	}
	far := Compute(3840, 5000)
	if !almostEqual(far.PortalWidth, 3840.0/2/3, tolerance) {
		t.Errorf("portal width past reference = %v, want %v", far.PortalWidth, 3840.0/2/3)
	}
}

func stripSum(c Columns) float64 {
	return 2*c.OuterFiller + c.LeftColumn + 2*c.PortalWidth + c.MiddleGap + c.RightColumn
}

func TestLayoutContainmentSweep(t *testing.T) {
	for w := 200.0; w <= 4000; w += 97 {
		for h := 200.0; h <= 3000; h += 131 {
			c := Compute(w, h)

			if got := stripSum(c); !almostEqual(got, w, 1e-6) {
				t.Fatalf("viewport %vx%v: strip sum %v != width %v", w, h, got, w)
			}
			for name, v := range map[string]float64{
				"outer":         c.OuterFiller,
				"left column":   c.LeftColumn,
				"portal width":  c.PortalWidth,
				"middle gap":    c.MiddleGap,
				"right column":  c.RightColumn,
				"portal height": c.PortalHeight,
			} {
				if v < 0 {
					t.Fatalf("viewport %vx%v: negative %s: %v", w, h, name, v)
				}
			}

			b := c.Boundaries()
			edges := []float64{
				b.LeftOuterLeft, b.LeftOuterRight, b.LeftPortalLeft, b.LeftPortalRight,
				b.MiddleLeft, b.MiddleRight, b.RightPortalLeft, b.RightPortalRight,
				b.RightOuterLeft, b.RightOuterRight,
			}
			for i := 1; i < len(edges); i++ {
				if edges[i] < edges[i-1]-tolerance {
					t.Fatalf("viewport %vx%v: boundary %d decreases: %v < %v", w, h, i, edges[i], edges[i-1])
				}
			}
			if edges[0] != 0 {
				t.Fatalf("viewport %vx%v: first boundary %v != 0", w, h, edges[0])
			}
			if !almostEqual(edges[len(edges)-1], w, 1e-6) {
				t.Fatalf("viewport %vx%v: last boundary %v != width", w, h, edges[len(edges)-1])
			}
		}
	}
}

func TestLayoutRescaleBranch(t *testing.T) {
	// A short, narrow landscape viewport overflows through the column
	// minimums and must be rescued by the fit-check.
	c := Compute(610, 200)
	if c.Category != Landscape {
		t.Fatalf("category = %v, want Landscape", c.Category)
	}
	if !c.Rescaled {
		t.Fatal("expected the fit-check to rescale a 610x200 viewport")
	}
	if c.ScaleRatio >= 1 || c.ScaleRatio <= 0 {
		t.Errorf("scale ratio = %v, want within (0, 1)", c.ScaleRatio)
	}
	if got := stripSum(c); !almostEqual(got, 610, 1e-6) {
		t.Errorf("rescaled strip sum = %v, want 610", got)
	}
}

func TestComputeDegenerateInputs(t *testing.T) {
	for _, tt := range []struct {
		name string
		w, h float64
	}{
		{"zero", 0, 0},
		{"negative", -100, -50},
		{"nan", math.NaN(), math.NaN()},
	} {
		c := Compute(tt.w, tt.h)
		if c.PortalWidth != 0 || c.PortalHeight != 0 {
			t.Errorf("%s: portal dims = %v x %v, want zero size", tt.name, c.PortalWidth, c.PortalHeight)
		}
		if c.OuterFiller < 0 || c.LeftColumn < 0 || c.MiddleGap < 0 {
			t.Errorf("%s: negative columns in %+v", tt.name, c)
		}
	}
}

func TestEngineCachesBaseline(t *testing.T) {
	var e Engine

	first, recomputed := e.Layout(1280, 720, 1)
	if !recomputed {
		t.Fatal("first layout must recompute")
	}

	again, recomputed := e.Layout(1280, 720, 1)
	if recomputed {
		t.Error("unchanged baseline must not recompute")
	}
	if again != first {
		t.Error("cached layout differs from computed layout")
	}

	// Category must stay stable across repeated relayouts.
	for i := 0; i < 10; i++ {
		c, _ := e.Layout(1280, 720, 1)
		if c.Category != first.Category {
			t.Fatalf("category flipped to %v on iteration %d", c.Category, i)
		}
	}

	if _, recomputed := e.Layout(1280, 721, 1); !recomputed {
		t.Error("viewport change must recompute")
	}
	if _, recomputed := e.Layout(1280, 721, 1.25); !recomputed {
		t.Error("font scale change must recompute")
	}

	e.Invalidate()
	if _, recomputed := e.Layout(1280, 721, 1.25); !recomputed {
		t.Error("invalidated engine must recompute")
	}
}

func BenchmarkCompute(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Compute(1920, 1080)
	}
}

func BenchmarkEngineCached(b *testing.B) {
	var e Engine
	e.Layout(1920, 1080, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Layout(1920, 1080, 1)
	}
}
