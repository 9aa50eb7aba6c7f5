// Package easing provides the interpolation curves used by the animation
// phases. All functions map a progress value t in [0,1] to an eased value;
// inputs are not validated because callers clamp progress upstream.
package easing

// Func maps linear progress to eased progress. Implementations must satisfy
// f(0) = 0 and f(1) = 1, but are free to overshoot [0,1] in between (see
// InOutBack).
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// OutQuad decelerates quadratically toward the end.
func OutQuad(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// OutCubic decelerates cubically toward the end.
func OutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// InOutQuad accelerates through the first half and decelerates through the
// second.
func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	v := -2*t + 2
	return 1 - v*v/2
}

// InOutCubic is a stronger-shouldered variant of InOutQuad.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	v := -2*t + 2
	return 1 - v*v*v/2
}

// Overshoot constants for the back ease family.
const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
)

// InOutBack overshoots slightly past the start and end values before
// settling, which reads as anticipation and follow-through on large motions.
func InOutBack(t float64) float64 {
	if t < 0.5 {
		v := 2 * t
		return (v * v * ((backC2+1)*v - backC2)) / 2
	}
	v := 2*t - 2
	return (v*v*((backC2+1)*v+backC2) + 2) / 2
}
