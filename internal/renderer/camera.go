package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/skyjourney/internal/motion"
)

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

// Camera projects world points into pixel space for one frame.
type Camera struct {
	view, proj mgl64.Mat4
	width      float64
	height     float64
	focal      float64 // pixels per world unit at depth 1
}

// NewCamera builds the lens described by a controller snapshot. A snapshot from
// a controller that is not ready gets the resting lens at (0,0,distance).
func NewCamera(out motion.FrameOutputs, width, height int) Camera {
	lens := out.Lens
	if lens.Fov == 0 {
		lens = motion.LensFor(motion.Viewport{Width: width, Height: height})
	}

	eye := mgl64.Vec3{0, 0, lens.Distance}
	forward := mgl64.Vec3{0, 0, -1}
	up := mgl64.Vec3{0, 1, 0}
	if out.Ready {
		eye = out.CameraPosition
		forward = out.Orientation.Rotate(forward)
		up = out.Orientation.Rotate(up)
	}

	fovy := mgl64.DegToRad(lens.Fov)
	aspect := float64(width) / math.Max(float64(height), 1)

	return Camera{
		view:   mgl64.LookAtV(eye, eye.Add(forward), up),
		proj:   mgl64.Perspective(fovy, aspect, nearPlane, farPlane),
		width:  float64(width),
		height: float64(height),
		focal:  float64(height) / 2 / math.Tan(fovy/2),
	}
}

// Project returns pixel coordinates and view depth of p. ok is false for
// points behind the near plane.
func (c Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := c.proj.Mul4(c.view).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= nearPlane {
		return 0, 0, w, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	x = (ndcX + 1) / 2 * c.width
	y = (1 - ndcY) / 2 * c.height
	return x, y, w, true
}

// Scale converts a world size at depth into pixels.
func (c Camera) Scale(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size * c.focal / depth
}

// onScreen reports whether a circle of radius r around (x,y) touches the frame.
func (c Camera) onScreen(x, y, r float64) bool {
	return x+r >= 0 && y+r >= 0 && x-r <= c.width && y-r <= c.height
}
