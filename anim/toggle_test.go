package anim

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSpreadTweenCycle(t *testing.T) {
	Convey("A portal spread tween", t, func() {
		tw := NewSpreadTween(time.Second)

		Convey("rests closed with the doors fully spread", func() {
			So(tw.Spread(), ShouldEqual, 1)
			So(tw.IsOpen(), ShouldBeFalse)
			So(tw.Animating(), ShouldBeFalse)
			So(tw.Phase(), ShouldEqual, PhaseClosed)
		})

		Convey("accepts a toggle and starts opening", func() {
			So(tw.Toggle(), ShouldBeTrue)
			So(tw.Animating(), ShouldBeTrue)
			So(tw.Phase(), ShouldEqual, PhaseOpening)

			Convey("and drops re-entrant toggles without queueing", func() {
				So(tw.Toggle(), ShouldBeFalse)
				So(tw.Phase(), ShouldEqual, PhaseOpening)

				tw.Update(time.Second)
				So(tw.IsOpen(), ShouldBeTrue)
				So(tw.Spread(), ShouldEqual, 0)
			})

			Convey("moves strictly between the endpoints mid-flight", func() {
				tw.Update(500 * time.Millisecond)
				So(tw.Spread(), ShouldBeBetween, 0, 1)
				So(tw.Animating(), ShouldBeTrue)
			})

			Convey("lands open and clears the animating flag in one tick", func() {
				tw.Update(1500 * time.Millisecond)
				So(tw.Spread(), ShouldEqual, 0)
				So(tw.IsOpen(), ShouldBeTrue)
				So(tw.Animating(), ShouldBeFalse)
				So(tw.Phase(), ShouldEqual, PhaseOpen)
			})
		})

		Convey("closes again from the open state", func() {
			tw.Toggle()
			tw.Update(time.Second)
			So(tw.Phase(), ShouldEqual, PhaseOpen)

			So(tw.Toggle(), ShouldBeTrue)
			So(tw.Phase(), ShouldEqual, PhaseClosing)

			tw.Update(250 * time.Millisecond)
			So(tw.Spread(), ShouldBeBetween, 0, 1)

			tw.Update(time.Second)
			So(tw.Spread(), ShouldEqual, 1)
			So(tw.IsOpen(), ShouldBeFalse)
			So(tw.Phase(), ShouldEqual, PhaseClosed)
		})
	})
}

func TestSpreadTweenDegenerateDuration(t *testing.T) {
	Convey("A zero-duration tween completes on its first update", t, func() {
		tw := NewSpreadTween(0)
		So(tw.Toggle(), ShouldBeTrue)
		tw.Update(0)
		So(tw.Spread(), ShouldEqual, 0)
		So(tw.IsOpen(), ShouldBeTrue)
		So(tw.Animating(), ShouldBeFalse)
	})
}

func TestSpreadTweenIdleUpdate(t *testing.T) {
	Convey("Updates while resting are no-ops", t, func() {
		tw := NewSpreadTween(time.Second)
		tw.Update(10 * time.Second)
		So(tw.Spread(), ShouldEqual, 1)
		So(tw.Phase(), ShouldEqual, PhaseClosed)
	})
}
