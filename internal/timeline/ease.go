package timeline

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(p float64) float64

// Linear is the identity ease.
func Linear(p float64) float64 { return p }

// Power1Out decelerates quadratically. Default for every tween.
func Power1Out(p float64) float64 {
	q := 1 - p
	return 1 - q*q
}

// EaseInOutCubic applies smooth easing on both ends.
func EaseInOutCubic(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := -2*p + 2
	return 1 - q*q*q/2
}
