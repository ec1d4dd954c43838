package scroll

import (
	"math"
	"sync/atomic"
)

// Controls is a page-based scroll area. Input goroutines write the raw target
// with Publish or ScrollPixels; the frame loop reads a damped offset with Sample.
// Only the frame loop may call Sample.
type Controls struct {
	pages   float64
	damping float64 // smoothing time in seconds
	enabled func() bool

	target atomic.Uint64 // float64 bits, last value wins

	offset   float64
	velocity float64
}

// New creates controls spanning pages viewport heights. enabled gates input and
// motion; nil means always enabled.
func New(pages, damping float64, enabled func() bool) *Controls {
	if pages < 1 {
		pages = 1
	}
	if damping < 0 {
		damping = 0
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Controls{pages: pages, damping: damping, enabled: enabled}
}

// Pages returns the scroll height in viewports.
func (c *Controls) Pages() float64 { return c.pages }

// Publish sets the raw scroll target in [0,1]. Ignored while disabled.
func (c *Controls) Publish(offset float64) {
	if !c.enabled() {
		return
	}
	c.target.Store(math.Float64bits(clamp01(offset)))
}

// ScrollPixels moves the target by dy pixels of a viewport height tall screen.
func (c *Controls) ScrollPixels(dy float64, height int) {
	if !c.enabled() || height <= 0 {
		return
	}
	span := float64(height) * math.Max(c.pages-1, 1)
	for {
		old := c.target.Load()
		next := clamp01(math.Float64frombits(old) + dy/span)
		if c.target.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}

// Target returns the latest published value.
func (c *Controls) Target() float64 {
	return math.Float64frombits(c.target.Load())
}

// Offset returns the damped offset from the last Sample.
func (c *Controls) Offset() float64 { return c.offset }

// Sample advances the damped offset by dt seconds and returns it. The offset is
// frozen while disabled.
func (c *Controls) Sample(dt float64) float64 {
	if !c.enabled() || dt <= 0 || math.IsNaN(dt) {
		return c.offset
	}
	c.offset, c.velocity = smoothDamp(c.offset, c.Target(), c.velocity, c.damping, dt)
	return c.offset
}

// smoothDamp is a critically damped spring that reaches target in about
// smoothTime seconds without overshooting.
func smoothDamp(current, target, velocity, smoothTime, dt float64) (float64, float64) {
	if smoothTime <= 0 {
		return target, 0
	}
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (velocity + omega*change) * dt
	velocity = (velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	if (target-current > 0) == (out > target) {
		return target, 0
	}
	return out, velocity
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
