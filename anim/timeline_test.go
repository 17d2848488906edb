package anim

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimelineDefaults(t *testing.T) {
	Convey("A fresh timeline rests on the canonical defaults", t, func() {
		tl := NewTimeline()
		f := tl.Current()

		So(f.TextZoom, ShouldEqual, 1)
		So(f.Rotation, ShouldEqual, 0)
		So(f.GroupScale, ShouldEqual, 1)
		So(f.PortalScale, ShouldEqual, 0)
		So(f.HoleScale, ShouldEqual, 0)
		So(f.SideText, ShouldEqual, 0)
		So(f.SideTextEase, ShouldEqual, 0)
		So(f.ScrollFade, ShouldEqual, 1)
	})
}

func TestTimelinePhases(t *testing.T) {
	Convey("Scroll phases", t, func() {
		tl := NewTimeline()

		Convey("the zoom phase ramps the hero text to 1.2", func() {
			f := tl.Advance(0.1)
			So(f.TextZoom, ShouldAlmostEqual, 1.1, 1e-12)

			f = tl.Advance(0.2)
			So(f.TextZoom, ShouldAlmostEqual, 1.2, 1e-12)
			So(f.Rotation, ShouldEqual, 0)
			So(f.GroupScale, ShouldEqual, 1)
		})

		Convey("the zoom holds at 1.2 past its phase", func() {
			f := tl.Advance(0.6)
			So(f.TextZoom, ShouldAlmostEqual, 1.2, 1e-12)
		})

		Convey("rotation completes by a quarter of phase two", func() {
			f := tl.Advance(0.4)
			So(f.Rotation, ShouldAlmostEqual, -math.Pi/4, 1e-12)
			So(f.GroupScale, ShouldAlmostEqual, 1, 1e-12)
			So(f.PortalScale, ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("group scale-down and portal reveal mirror each other", func() {
			f := tl.Advance(0.7)
			So(f.GroupScale, ShouldAlmostEqual, 0.5, 1e-12)
			So(f.PortalScale, ShouldAlmostEqual, 0.5, 1e-12)
			So(f.HoleScale, ShouldEqual, f.PortalScale)
		})

		Convey("full scroll lands on the end state", func() {
			f := tl.Advance(1)
			So(f.TextZoom, ShouldAlmostEqual, 1.2, 1e-12)
			So(f.Rotation, ShouldAlmostEqual, -math.Pi/4, 1e-12)
			So(f.GroupScale, ShouldAlmostEqual, 0, 1e-12)
			So(f.PortalScale, ShouldAlmostEqual, 1, 1e-12)
			So(f.SideText, ShouldAlmostEqual, 1, 1e-12)
			So(f.SideTextEase, ShouldAlmostEqual, 1, 1e-12)
			So(f.ScrollFade, ShouldEqual, 0)
		})
	})
}

func TestTimelineSideText(t *testing.T) {
	Convey("Side text reveal", t, func() {
		tl := NewTimeline()

		Convey("stays parked before its start point", func() {
			f := tl.Advance(0.39)
			So(f.SideText, ShouldEqual, 0)
			So(f.SideTextEase, ShouldEqual, 0)
		})

		Convey("the pow stretch front-loads the reveal", func() {
			f := tl.Advance(0.7)
			raw := (0.7 - 0.4) / 0.6
			So(f.SideText, ShouldAlmostEqual, math.Pow(raw, 0.7), 1e-12)
			So(f.SideText, ShouldBeGreaterThan, raw)
			So(f.SideTextEase, ShouldBeBetween, 0, 1)
		})
	})
}

func TestTimelineScrollFade(t *testing.T) {
	Convey("The scroll hint fades over the first tenth", t, func() {
		tl := NewTimeline()
		So(tl.Advance(0.05).ScrollFade, ShouldAlmostEqual, 0.5, 1e-12)
		So(tl.Advance(0.1).ScrollFade, ShouldEqual, 0)
		So(tl.Advance(0.8).ScrollFade, ShouldEqual, 0)
	})
}

func TestTimelineReset(t *testing.T) {
	Convey("Returning to progress zero restores exact defaults", t, func() {
		tl := NewTimeline()
		defaults := tl.Current()

		tl.Advance(0.85)
		So(tl.Current(), ShouldNotResemble, defaults)

		Convey("via Advance(0)", func() {
			f := tl.Advance(0)
			So(f, ShouldResemble, defaults)
			So(tl.Progress(), ShouldEqual, 0)
		})

		Convey("via Reset", func() {
			tl.Reset()
			So(tl.Current(), ShouldResemble, defaults)
		})

		Convey("and Advance(0) output matches Reset output exactly", func() {
			a := tl.Advance(0)
			tl.Advance(0.6)
			tl.Reset()
			So(a, ShouldResemble, tl.Current())
		})
	})
}

func TestTimelineInputSanitization(t *testing.T) {
	Convey("Degenerate progress values are clamped before use", t, func() {
		tl := NewTimeline()
		defaults := tl.Current()

		So(tl.Advance(math.NaN()), ShouldResemble, defaults)
		So(tl.Advance(-2), ShouldResemble, defaults)
		So(tl.Advance(3.5), ShouldResemble, tl.Advance(1))
		So(tl.Progress(), ShouldEqual, 1)
	})
}
