package motion

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/timeline"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

const (
	LookAheadCamera   = 0.008
	LookAheadAirplane = 0.02

	CameraFollowRate = 24.0
	LookFollowRate   = 24.0
	BankFollowRate   = 2.0
	RailFollowRate   = 1.0
	FadeInRate       = 0.1
	FadeOutRate      = 1.0

	// DefaultEndMargin is measured from the last control point toward the start.
	DefaultEndMargin = 100.0
)

// Journey is the slice of the journey store the controller needs.
type Journey interface {
	Playing() bool
	Ended() bool
	SetEnded(bool) bool
}

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height int
}

// Landscape reports whether the viewport is wider than tall.
func (v Viewport) Landscape() bool { return v.Width > v.Height }

// Lens is the camera projection for a viewport.
type Lens struct {
	Fov      float64 // vertical, degrees
	Distance float64 // camera distance behind the rail
}

// LensFor picks the lens for the viewport orientation.
func LensFor(v Viewport) Lens {
	if v.Landscape() {
		return Lens{Fov: 30, Distance: 5}
	}
	return Lens{Fov: 80, Distance: 2}
}

// CameraRig is the group that carries the camera along the path.
type CameraRig struct {
	Base      mgl64.Vec3 // position on the path
	Rail      mgl64.Vec3 // local offset of the camera rail
	Direction mgl64.Vec3 // unit +Z of the rig, pointing back along the path
}

// Orientation derives the rig rotation from Direction.
func (r *CameraRig) Orientation() mgl64.Quat {
	return lookRotation(r.Direction)
}

// Airplane is the plane model inside the rig.
type Airplane struct {
	Offset      mgl64.Vec3 // local, animated by the one-shot flights
	Orientation mgl64.Quat
}

// FrameInput is sampled fresh every frame.
type FrameInput struct {
	ScrollOffset float64
	Delta        float64 // seconds since the previous frame
	Viewport     Viewport
}

// FrameOutputs is a snapshot of everything the host draws for one frame.
type FrameOutputs struct {
	Ready bool
	Frame int

	Offset float64
	Lens   Lens

	CameraBase     mgl64.Vec3
	Rail           mgl64.Vec3
	Direction      mgl64.Vec3
	Orientation    mgl64.Quat
	CameraPosition mgl64.Vec3 // world position of the lens

	AirplaneOffset      mgl64.Vec3
	AirplaneOrientation mgl64.Quat
	AirplanePosition    mgl64.Vec3 // world
	BankDegrees         float64

	Friction float64
	Waypoint int // index of the influencing waypoint, -1 when none

	Opacity float64
	ColorA  color.RGBA
	ColorB  color.RGBA

	Playing    bool
	Ended      bool
	Terminated bool // the journey ended on this frame
}

// Controller turns scroll progress into camera, airplane, opacity and timeline
// state once per frame. It is single-threaded: Update must not be called
// concurrently, and the bound rig and airplane have no other writer.
type Controller struct {
	curve    *curve.CatmullRom
	registry *waypoint.Registry

	camera   *CameraRig
	airplane *Airplane

	opacity  float64
	bank     float64
	friction float64
	nearest  int
	frame    int

	gradient   timeline.Gradient
	stops      []timeline.GradientStop
	background *timeline.Timeline
	intro      *timeline.Timeline
	outro      *timeline.Timeline

	introStarted bool
	outroStarted bool

	choreo    Choreography
	endMargin float64
	log       *zap.Logger
}

// NewController creates a controller bound to a fresh rig and airplane.
func NewController(c *curve.CatmullRom, reg *waypoint.Registry, opts ...Option) *Controller {
	ctrl := &Controller{
		curve:     c,
		registry:  reg,
		choreo:    DefaultChoreography(),
		endMargin: DefaultEndMargin,
		friction:  1,
		nearest:   -1,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	if ctrl.stops == nil {
		ctrl.stops = DefaultGradient()
	}
	if ctrl.registry == nil {
		ctrl.registry = waypoint.NewRegistry(nil)
	}

	ctrl.Bind(&CameraRig{Direction: mgl64.Vec3{0, 0, 1}}, &Airplane{Orientation: mgl64.QuatIdent()})
	return ctrl
}

// Bind attaches the transforms the controller writes and rebuilds the
// timelines that animate them. Passing nil leaves the controller not ready.
func (c *Controller) Bind(camera *CameraRig, airplane *Airplane) {
	c.camera = camera
	c.airplane = airplane
	c.introStarted = false
	c.outroStarted = false

	c.background = timeline.NewGradientCue(&c.gradient, c.stops, 1)
	if camera == nil || airplane == nil {
		c.intro, c.outro = nil, nil
		return
	}

	ch := c.choreo
	c.intro = timeline.New().From(0, ch.IntroDuration, timeline.Power1Out,
		timeline.Prop(&airplane.Offset[2], ch.IntroFrom[1]),
		timeline.Prop(&airplane.Offset[1], ch.IntroFrom[0]),
	)
	c.outro = timeline.New().
		To(0, ch.OutroDuration, timeline.Power1Out,
			timeline.Prop(&airplane.Offset[2], ch.OutroAirplane[1]),
			timeline.Prop(&airplane.Offset[1], ch.OutroAirplane[0]),
		).
		To(0, ch.OutroRailDuration, timeline.Power1Out,
			timeline.Prop(&camera.Rail[1], ch.OutroRailY),
		).
		Then(ch.OutroSnapDuration, timeline.Power1Out,
			timeline.Prop(&airplane.Offset[2], ch.OutroSnapZ),
		)
}

// Ready reports whether transforms are bound.
func (c *Controller) Ready() bool {
	return c != nil && c.curve != nil && c.camera != nil && c.airplane != nil && c.background != nil
}

// Camera returns the bound rig.
func (c *Controller) Camera() *CameraRig { return c.camera }

// Airplane returns the bound airplane.
func (c *Controller) Airplane() *Airplane { return c.airplane }

// Opacity returns the scene opacity.
func (c *Controller) Opacity() float64 { return c.opacity }

// IntroStarted reports whether the fly-in has been triggered.
func (c *Controller) IntroStarted() bool { return c.introStarted }

// OutroStarted reports whether the fly-out has been triggered.
func (c *Controller) OutroStarted() bool { return c.outroStarted }

// Outro exposes the fly-out timeline for inspection.
func (c *Controller) Outro() *timeline.Timeline { return c.outro }

// Update advances one frame. Not-ready controllers return a zero snapshot.
func (c *Controller) Update(in FrameInput, j Journey) FrameOutputs {
	if !c.Ready() || j == nil {
		return FrameOutputs{Waypoint: -1}
	}

	dt := in.Delta
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	offset := clamp01(in.ScrollOffset)
	c.frame++
	lens := LensFor(in.Viewport)

	playing, ended := j.Playing(), j.Ended()

	if playing && !c.introStarted {
		c.introStarted = c.intro.Play()
		c.log.Info("intro started", zap.Int("frame", c.frame))
	}
	c.intro.Advance(dt)

	if playing && !ended && c.opacity < 1 {
		c.opacity = lerp(c.opacity, 1, dt*FadeInRate)
	}
	if ended && c.opacity > 0 {
		c.opacity = lerp(c.opacity, 0, dt*FadeOutRate)
	}

	if ended {
		c.startOutro()
		c.outro.Advance(dt)
		return c.snapshot(offset, lens, playing, ended, false)
	}

	// rail follows the last waypoint in range
	inf := c.registry.Influence(c.camera.Base)
	c.friction = inf.Friction
	c.nearest = inf.Index
	c.camera.Rail = lerpVec(c.camera.Rail, mgl64.Vec3{inf.Target, 0, 0}, dt*RailFollowRate)

	c.background.Seek(offset * c.background.Duration())

	cur := c.curve.PointAt(offset)
	c.camera.Base = lerpVec(c.camera.Base, cur, dt*CameraFollowRate*inf.Friction)

	ahead := c.curve.PointAt(math.Min(offset+LookAheadCamera, 1))
	target := safeNormalize(cur.Sub(ahead))
	if eased := lerpVec(c.camera.Direction, target, dt*LookFollowRate); eased.Len() > 0 {
		c.camera.Direction = eased.Normalize()
	}

	tangent := c.curve.TangentAt(math.Min(offset+LookAheadAirplane, 1))
	c.bank = BankAngle(tangent, target)
	pitch, yaw, _ := eulerXYZ(c.airplane.Orientation)
	goal := quatFromEulerXYZ(pitch, yaw, mgl64.DegToRad(c.bank))
	c.airplane.Orientation = slerp(c.airplane.Orientation, goal, dt*BankFollowRate)

	terminated := false
	if c.camera.Base.Z() <= c.curve.Last().Z()+c.endMargin {
		if j.SetEnded(true) {
			terminated = true
			c.log.Info("journey ended",
				zap.Int("frame", c.frame),
				zap.Float64("z", c.camera.Base.Z()),
				zap.Float64("offset", offset),
			)
		}
		if j.Ended() {
			c.startOutro()
			ended = true
		}
	}

	return c.snapshot(offset, lens, playing, ended, terminated)
}

func (c *Controller) startOutro() {
	if c.outroStarted {
		return
	}
	c.outroStarted = c.outro.Play()
	c.log.Info("outro started", zap.Int("frame", c.frame))
}

func (c *Controller) snapshot(offset float64, lens Lens, playing, ended, terminated bool) FrameOutputs {
	rot := c.camera.Orientation()
	eye := c.camera.Base.Add(rot.Rotate(c.camera.Rail.Add(mgl64.Vec3{0, 0, lens.Distance})))
	plane := c.camera.Base.Add(rot.Rotate(c.airplane.Offset))
	a, b := c.gradient.RGBA()

	return FrameOutputs{
		Ready:               true,
		Frame:               c.frame,
		Offset:              offset,
		Lens:                lens,
		CameraBase:          c.camera.Base,
		Rail:                c.camera.Rail,
		Direction:           c.camera.Direction,
		Orientation:         rot,
		CameraPosition:      eye,
		AirplaneOffset:      c.airplane.Offset,
		AirplaneOrientation: c.airplane.Orientation,
		AirplanePosition:    plane,
		BankDegrees:         c.bank,
		Friction:            c.friction,
		Waypoint:            c.nearest,
		Opacity:             c.opacity,
		ColorA:              a,
		ColorB:              b,
		Playing:             playing,
		Ended:               ended,
		Terminated:          terminated,
	}
}

// DefaultGradient returns the background stops of the published scene.
func DefaultGradient() []timeline.GradientStop {
	pairs := [][2]string{
		{"#357ca1", "#ffad30"},
		{"#09b1ec", "#ffffff"},
		{"#357ca1", "#ffffff"},
		{"#357ca1", "#ffcc00"},
	}
	stops := make([]timeline.GradientStop, 0, len(pairs))
	for _, p := range pairs {
		s, err := timeline.ParseStop(p[0], p[1])
		if err != nil {
			panic(err)
		}
		stops = append(stops, s)
	}
	return stops
}
