package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsDenominator floors every divisor in the projection math so degenerate
// viewports produce zeros instead of Inf/NaN.
const epsDenominator = 1e-6

// CSSToWorldX maps a CSS x coordinate onto a frustum slice. The slice must be
// cut at the depth of the content being positioned; a slice from any other
// plane introduces a parallax offset that grows with the camera FOV.
func CSSToWorldX(cssX, viewportWidthCSS float64, slice FrustumSlice) float64 {
	vw := math.Max(viewportWidthCSS, epsDenominator)
	return (cssX/vw - 0.5) * slice.Width
}

// CSSToWorldY maps a CSS y coordinate (growing downward) onto a frustum
// slice, whose Y grows upward.
func CSSToWorldY(cssY, viewportHeightCSS float64, slice FrustumSlice) float64 {
	vh := math.Max(viewportHeightCSS, epsDenominator)
	return (0.5 - cssY/vh) * slice.Height
}

// CSSLengthToWorldX converts a horizontal CSS length to world units on a slice.
func CSSLengthToWorldX(cssLen, viewportWidthCSS float64, slice FrustumSlice) float64 {
	vw := math.Max(viewportWidthCSS, epsDenominator)
	return cssLen / vw * slice.Width
}

// CSSLengthToWorldY converts a vertical CSS length to world units on a slice.
func CSSLengthToWorldY(cssLen, viewportHeightCSS float64, slice FrustumSlice) float64 {
	vh := math.Max(viewportHeightCSS, epsDenominator)
	return cssLen / vh * slice.Height
}

// ClampToSlice limits a world X coordinate to the visible extent of a slice.
func ClampToSlice(worldX float64, slice FrustumSlice) float64 {
	half := slice.HalfWidth()
	return math.Min(math.Max(worldX, -half), half)
}

// HoleRadii derives the background hole semi-axes in screen UV from the
// viewport pixel size. The clamps keep the holes visible on very small
// viewports and proportionate on very wide ones.
func HoleRadii(widthPx, heightPx float64) mgl64.Vec2 {
	w := math.Max(widthPx, epsDenominator)
	h := math.Max(heightPx, epsDenominator)
	return mgl64.Vec2{
		clampF(125/w, 0.05, 0.17),
		clampF(200/h, 0.05, 0.5),
	}
}

func clampF(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
