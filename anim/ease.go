package anim

import (
	"golang.org/x/exp/constraints"
)

// Lerp interpolates linearly from a to b. t is not clamped.
func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// Clamp limits n to [minN, maxN].
func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)
	return n
}

// Smoothstep is the cubic Hermite ramp over [0, 1] with zero slope at both
// ends. Input outside the range is clamped.
func Smoothstep[F constraints.Float](t F) F {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// EaseInOutCubic accelerates through the first half and decelerates through
// the second. Input outside [0, 1] is clamped.
func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	t = 2*t - 2
	return 0.5*t*t*t + 1
}
