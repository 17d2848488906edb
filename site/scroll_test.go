package site

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScrollTrackerWheel(t *testing.T) {
	Convey("Wheel input moves through the pinned travel", t, func() {
		s := NewScrollTracker(4, 1000)
		So(s.Progress(), ShouldEqual, 0)

		Convey("a wheel-down notch advances one step", func() {
			s.AddWheel(-1)
			So(s.Progress(), ShouldAlmostEqual, 120.0/3000.0, 1e-12)
		})

		Convey("wheel-up at the top stays clamped at zero", func() {
			s.AddWheel(3)
			So(s.Progress(), ShouldEqual, 0)
		})

		Convey("enough notches saturate at the bottom", func() {
			for i := 0; i < 100; i++ {
				s.AddWheel(-1)
			}
			So(s.Progress(), ShouldEqual, 1)
		})

		Convey("NaN wheel input is ignored", func() {
			s.AddWheel(-1)
			p := s.Progress()
			s.AddWheel(math.NaN())
			So(s.Progress(), ShouldEqual, p)
		})
	})
}

func TestScrollTrackerJumps(t *testing.T) {
	Convey("Absolute jumps", t, func() {
		s := NewScrollTracker(4, 1000)

		Convey("SetProgress lands exactly where asked", func() {
			s.SetProgress(0.5)
			So(s.Progress(), ShouldAlmostEqual, 0.5, 1e-12)
		})

		Convey("SetProgress clamps both ends", func() {
			s.SetProgress(2)
			So(s.Progress(), ShouldEqual, 1)
			s.SetProgress(-1)
			So(s.Progress(), ShouldEqual, 0)
		})

		Convey("ScrollBy pages in pixels", func() {
			s.ScrollBy(1500)
			So(s.Progress(), ShouldAlmostEqual, 0.5, 1e-12)
			s.ScrollBy(-3000)
			So(s.Progress(), ShouldEqual, 0)
		})

		Convey("a NaN offset resets to the top instead of poisoning progress", func() {
			s.SetProgress(0.7)
			s.SetOffset(math.NaN())
			So(s.Progress(), ShouldEqual, 0)
		})
	})
}

func TestScrollTrackerResize(t *testing.T) {
	Convey("Resizing rescales the travel but keeps progress stable", t, func() {
		s := NewScrollTracker(4, 1000)
		s.SetProgress(0.5)

		s.Resize(500)
		So(s.Progress(), ShouldAlmostEqual, 0.5, 1e-12)

		Convey("and further travel runs in the new viewport's pixels", func() {
			s.ScrollBy(750)
			So(s.Progress(), ShouldAlmostEqual, 1, 1e-12)
		})
	})
}

func TestScrollTrackerDegenerate(t *testing.T) {
	Convey("Degenerate construction falls back to working defaults", t, func() {
		s := NewScrollTracker(0, 0)
		s.SetProgress(0.25)
		So(s.Progress(), ShouldAlmostEqual, 0.25, 1e-12)
	})
}
