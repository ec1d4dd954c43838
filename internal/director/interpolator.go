package director

import "github.com/ivlev/skyjourney/internal/timeline"

// OffsetAt calculates the scroll offset at a given time by interpolating between keyframes
func OffsetAt(keyframes []Keyframe, currentTime float64) float64 {
	if len(keyframes) == 0 {
		return 0
	}

	// Before first keyframe
	if currentTime <= keyframes[0].Time {
		return keyframes[0].Offset
	}

	// After last keyframe
	last := keyframes[len(keyframes)-1]
	if currentTime >= last.Time {
		return last.Offset
	}

	// Find surrounding keyframes
	var prevKf, nextKf Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta <= 0 {
		return nextKf.Offset
	}
	t := (currentTime - prevKf.Time) / timeDelta

	// Apply easing (smooth in-out)
	t = timeline.EaseInOutCubic(t)

	return lerp(prevKf.Offset, nextKf.Offset, t)
}

// Focus returns the focus label of the keyframe segment active at currentTime
func Focus(keyframes []Keyframe, currentTime float64) string {
	focus := ""
	for _, kf := range keyframes {
		if kf.Time > currentTime {
			break
		}
		focus = kf.Focus
	}
	return focus
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
