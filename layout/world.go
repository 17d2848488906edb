package layout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"portal-site/scene"
)

// WorldBoundaries are the column edges projected onto a frustum slice and
// clamped to its visible extent.
type WorldBoundaries struct {
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

// ProjectBoundaries converts CSS column edges to world X coordinates. The
// slice must be cut at the depth of the content that will sit on these
// boundaries; projecting through any other plane shifts everything by a
// FOV-dependent parallax.
func ProjectBoundaries(b Boundaries, viewportWidth float64, slice scene.FrustumSlice) WorldBoundaries {
	conv := func(cssX float64) float64 {
		return scene.ClampToSlice(scene.CSSToWorldX(cssX, viewportWidth, slice), slice)
	}
	return WorldBoundaries{
		LeftOuterLeft:    conv(b.LeftOuterLeft),
		LeftOuterRight:   conv(b.LeftOuterRight),
		LeftPortalLeft:   conv(b.LeftPortalLeft),
		LeftPortalRight:  conv(b.LeftPortalRight),
		MiddleLeft:       conv(b.MiddleLeft),
		MiddleRight:      conv(b.MiddleRight),
		RightPortalLeft:  conv(b.RightPortalLeft),
		RightPortalRight: conv(b.RightPortalRight),
		RightOuterLeft:   conv(b.RightOuterLeft),
		RightOuterRight:  conv(b.RightOuterRight),
	}
}

// PortalPlacement is one portal's world-space transform target.
type PortalPlacement struct {
	Center     mgl64.Vec3
	HalfWidth  float64
	HalfHeight float64
}

// PortalPlacements positions both portals on the portal-depth slice,
// vertically centered in the viewport.
func PortalPlacements(c Columns, viewportW, viewportH float64, slice scene.FrustumSlice) (left, right PortalPlacement) {
	leftCSS, rightCSS := c.PortalCenters()
	halfW := scene.CSSLengthToWorldX(c.PortalWidth, viewportW, slice) / 2
	halfH := scene.CSSLengthToWorldY(c.PortalHeight, viewportH, slice) / 2

	left = PortalPlacement{
		Center:     mgl64.Vec3{scene.CSSToWorldX(leftCSS, viewportW, slice), 0, slice.Depth},
		HalfWidth:  halfW,
		HalfHeight: halfH,
	}
	right = PortalPlacement{
		Center:     mgl64.Vec3{scene.CSSToWorldX(rightCSS, viewportW, slice), 0, slice.Depth},
		HalfWidth:  halfW,
		HalfHeight: halfH,
	}
	return left, right
}

// PortalScaleFactor converts a target CSS portal size into a multiplicative
// render-scale factor, measured against the on-screen size the portal's
// current UV hole radii produce. Degenerate radii floor at epsilon so the
// factor stays finite.
func PortalScaleFactor(targetW, targetH float64, holeRadii mgl64.Vec2, viewportW, viewportH float64) mgl64.Vec2 {
	curW := math.Max(holeRadii.X()*2*viewportW, 1e-6)
	curH := math.Max(holeRadii.Y()*2*viewportH, 1e-6)
	return mgl64.Vec2{targetW / curW, targetH / curH}
}
