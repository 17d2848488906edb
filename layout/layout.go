// Package layout computes the responsive five-column strip the portal scene
// is built around: outer filler, text column, portal, middle gap, portal,
// text column, outer filler. All math is in CSS pixels; world projection is
// a separate pass over the finished columns.
package layout

import (
	"math"

	"portal-site/anim"
	"portal-site/core"
)

// Category is the responsive mode the viewport falls into.
type Category int

const (
	Mobile    Category = iota // width <= 600
	Portrait                  // width/height <= 1
	Landscape                 // everything else
)

func (c Category) String() string {
	switch c {
	case Mobile:
		return "mobile"
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return "unknown"
}

// Breakpoints and derivation constants. The literal 600/1920 values and the
// per-mode divisors are load-bearing: consumers and tests rely on them, so
// they must not be folded into derived expressions.
const (
	MobileMaxWidth = 600.0
	ReferenceWidth = 1920.0

	portraitDivisor  = 3.0
	landscapeDivisor = 6.0

	mobilePortalHeightCap  = 406.0
	mobilePortalHeightFrac = 0.45

	portalHeightAspect = 1.75
	portalHeightFrac   = 0.6

	// Landscape text columns refuse to shrink below a readable width; the
	// fit-check rescue handles narrow landscape viewports instead.
	minLandscapeColumn = 260.0
	minLandscapeMiddle = 80.0
)

// Columns is one computed layout: the widths of every column in CSS pixels.
// The invariant 2*OuterFiller + LeftColumn + 2*PortalWidth + MiddleGap +
// RightColumn == viewport width holds for every input.
type Columns struct {
	Category Category

	OuterFiller  float64
	LeftColumn   float64
	PortalWidth  float64
	MiddleGap    float64
	RightColumn  float64
	PortalHeight float64

	// Rescaled is set when a fit-check had to shrink the strip; ScaleRatio
	// is the factor applied (1 when untouched).
	Rescaled   bool
	ScaleRatio float64
}

// CategoryFor picks the responsive mode. Width wins over aspect: anything at
// or under the mobile breakpoint is mobile no matter how flat it is.
func CategoryFor(width, height float64) Category {
	if width <= MobileMaxWidth {
		return Mobile
	}
	if height > 0 && width/height <= 1 {
		return Portrait
	}
	return Landscape
}

// Compute derives the column layout for a viewport. Degenerate inputs (zero,
// negative, NaN) produce zero-size columns rather than errors.
func Compute(width, height float64) Columns {
	width = sanitize(width)
	height = sanitize(height)

	c := Columns{
		Category:   CategoryFor(width, height),
		ScaleRatio: 1,
	}

	switch c.Category {
	case Mobile:
		c.PortalWidth = width / 3
		c.LeftColumn = width / 12
		c.RightColumn = c.LeftColumn
		c.MiddleGap = width / 9

	case Portrait:
		c.PortalWidth = portalWidthFor(width, portraitDivisor)
		c.LeftColumn = width / 8
		c.RightColumn = c.LeftColumn
		c.MiddleGap = width / 24

	case Landscape:
		c.PortalWidth = portalWidthFor(width, landscapeDivisor)
		c.LeftColumn = math.Max(width/5, minLandscapeColumn)
		c.RightColumn = c.LeftColumn
		c.MiddleGap = math.Max(width/10, minLandscapeMiddle)

		// The landscape baseline can overflow on its own because of the
		// column minimums; rescue it before the shared path.
		fitCheck(&c, width)
	}

	// Universal safety net: whatever branch produced the dimensions, the
	// strip must fit the viewport.
	fitCheck(&c, width)

	if c.Category == Mobile {
		c.PortalHeight = math.Min(height*mobilePortalHeightFrac, mobilePortalHeightCap)
	} else {
		c.PortalHeight = math.Min(c.PortalWidth*portalHeightAspect, height*portalHeightFrac)
	}

	used := 2*c.PortalWidth + c.LeftColumn + c.RightColumn + c.MiddleGap
	c.OuterFiller = math.Max((width-used)/2, 0)
	return c
}

// portalWidthFor interpolates the portal width between the mobile breakpoint
// and the reference width; past the reference, growth resumes proportionally
// with the same per-mode divisor, which is continuous at the breakpoint.
func portalWidthFor(width, divisor float64) float64 {
	if width > ReferenceWidth {
		return width / 2 / divisor
	}
	t := anim.Clamp((width-MobileMaxWidth)/(ReferenceWidth-MobileMaxWidth), 0, 1)
	minWidth := MobileMaxWidth / divisor
	maxWidth := ReferenceWidth / 2 / divisor
	return anim.Lerp(minWidth, maxWidth, t)
}

// fitCheck shrinks the three strip widths uniformly when their total exceeds
// the viewport. Heights are untouched; they derive from the final widths.
func fitCheck(c *Columns, width float64) {
	used := 2*c.PortalWidth + c.LeftColumn + c.RightColumn + c.MiddleGap
	if used <= width || used <= 0 {
		return
	}
	ratio := width / used
	c.PortalWidth *= ratio
	c.LeftColumn *= ratio
	c.RightColumn *= ratio
	c.MiddleGap *= ratio
	c.Rescaled = true
	c.ScaleRatio *= ratio
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Boundaries are the CSS x positions of every column edge, derived by
// cumulative summation so each edge includes everything to its left. The
// outer regions fold the filler and the text column together.
type Boundaries struct {
	LeftOuterLeft    float64
	LeftOuterRight   float64
	LeftPortalLeft   float64
	LeftPortalRight  float64
	MiddleLeft       float64
	MiddleRight      float64
	RightPortalLeft  float64
	RightPortalRight float64
	RightOuterLeft   float64
	RightOuterRight  float64
}

// Boundaries sums the column widths left to right.
func (c Columns) Boundaries() Boundaries {
	var b Boundaries
	x := 0.0

	b.LeftOuterLeft = x
	x += c.OuterFiller + c.LeftColumn
	b.LeftOuterRight = x

	b.LeftPortalLeft = x
	x += c.PortalWidth
	b.LeftPortalRight = x

	b.MiddleLeft = x
	x += c.MiddleGap
	b.MiddleRight = x

	b.RightPortalLeft = x
	x += c.PortalWidth
	b.RightPortalRight = x

	b.RightOuterLeft = x
	x += c.RightColumn + c.OuterFiller
	b.RightOuterRight = x

	return b
}

// PortalCenters returns the CSS x centers of both portal columns.
func (c Columns) PortalCenters() (left, right float64) {
	b := c.Boundaries()
	return b.LeftPortalLeft + c.PortalWidth/2, b.RightPortalLeft + c.PortalWidth/2
}

// ColumnRects returns the two text-column boxes, vertically aligned with the
// portal band.
func (c Columns) ColumnRects(viewportHeight float64) (left, right core.Rect) {
	b := c.Boundaries()
	y := math.Max((viewportHeight-c.PortalHeight)/2, 0)

	left = core.Rect{
		X:      c.OuterFiller,
		Y:      y,
		Width:  c.LeftColumn,
		Height: c.PortalHeight,
	}
	right = core.Rect{
		X:      b.RightPortalRight,
		Y:      y,
		Width:  c.RightColumn,
		Height: c.PortalHeight,
	}
	return left, right
}
