package curve

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTension matches the flight path of the journey scene.
const DefaultTension = 0.5

// tangentDelta is the half-width of the finite difference used by TangentAt.
const tangentDelta = 0.0001

var ErrTooFewPoints = errors.New("curve needs at least two control points")

// CatmullRom is an open Catmull-Rom spline through a fixed list of control points.
// The parameter is spread uniformly over the segments, so equal steps of t do not
// cover equal distances on segments of different length.
type CatmullRom struct {
	points  []mgl64.Vec3
	tension float64
}

// New builds a spline through points. The slice is copied.
func New(points []mgl64.Vec3, tension float64) (*CatmullRom, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	cp := make([]mgl64.Vec3, len(points))
	copy(cp, points)
	return &CatmullRom{points: cp, tension: tension}, nil
}

// ControlPoints returns a copy of the control points.
func (c *CatmullRom) ControlPoints() []mgl64.Vec3 {
	cp := make([]mgl64.Vec3, len(c.points))
	copy(cp, c.points)
	return cp
}

// First returns the first control point.
func (c *CatmullRom) First() mgl64.Vec3 { return c.points[0] }

// Last returns the last control point.
func (c *CatmullRom) Last() mgl64.Vec3 { return c.points[len(c.points)-1] }

// PointAt samples the spline at t in [0,1].
func (c *CatmullRom) PointAt(t float64) mgl64.Vec3 {
	t = clamp01(t)
	n := len(c.points)

	p := float64(n-1) * t
	seg := int(math.Floor(p))
	w := p - float64(seg)
	if seg >= n-1 {
		seg = n - 2
		w = 1
	}

	p1 := c.points[seg]
	p2 := c.points[seg+1]

	var p0, p3 mgl64.Vec3
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = c.points[0].Sub(c.points[1]).Add(c.points[0])
	}
	if seg+2 < n {
		p3 = c.points[seg+2]
	} else {
		p3 = c.points[n-1].Sub(c.points[n-2]).Add(c.points[n-1])
	}

	// exact endpoints, the cubic leaves rounding noise at w == 1
	if w == 0 {
		return p1
	}
	if w == 1 {
		return p2
	}

	return mgl64.Vec3{
		c.cubic(p0[0], p1[0], p2[0], p3[0], w),
		c.cubic(p0[1], p1[1], p2[1], p3[1], w),
		c.cubic(p0[2], p1[2], p2[2], p3[2], w),
	}
}

// TangentAt returns the normalized direction of travel at t. t is clamped to
// [0,1] first, so the ends use a one-sided difference.
func (c *CatmullRom) TangentAt(t float64) mgl64.Vec3 {
	t = clamp01(t)
	t1 := clamp01(t - tangentDelta)
	t2 := clamp01(t + tangentDelta)

	d := c.PointAt(t2).Sub(c.PointAt(t1))
	if d.Len() == 0 {
		return mgl64.Vec3{}
	}
	return d.Normalize()
}

// Points returns divisions+1 samples evenly spaced in t, used for the ribbon.
func (c *CatmullRom) Points(divisions int) []mgl64.Vec3 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]mgl64.Vec3, 0, divisions+1)
	for i := 0; i <= divisions; i++ {
		out = append(out, c.PointAt(float64(i)/float64(divisions)))
	}
	return out
}

// cubic evaluates one axis of a segment. Tangents at p1 and p2 are
// tension*(p2-p0) and tension*(p3-p1).
func (c *CatmullRom) cubic(x0, x1, x2, x3, w float64) float64 {
	t0 := c.tension * (x2 - x0)
	t1 := c.tension * (x3 - x1)

	c0 := x1
	c1 := t0
	c2 := -3*x1 + 3*x2 - 2*t0 - t1
	c3 := 2*x1 - 2*x2 + t0 + t1

	return c0 + c1*w + c2*w*w + c3*w*w*w
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
