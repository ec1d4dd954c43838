package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/journey"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/scene"
	"github.com/ivlev/skyjourney/internal/scroll"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

// Options tune the overlay and logging of a session.
type Options struct {
	Logo      string
	Portfolio string // encoded as the outro QR code when set
	QRSize    int
	Logger    *zap.Logger
}

// Session is one visitor's journey through a scene: the shared state every
// host (window, offline renderer, browser) drives frame by frame.
type Session struct {
	Scene      *scene.Scene
	Curve      *curve.CatmullRom
	Registry   *waypoint.Registry
	Store      *journey.Store
	Scroll     *scroll.Controls
	Overlay    *overlay.Overlay
	Controller *motion.Controller
}

// New wires a session for sc.
func New(sc *scene.Scene, opt Options) (*Session, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	c, err := sc.Curve()
	if err != nil {
		return nil, fmt.Errorf("flight path: %w", err)
	}
	stops, err := sc.Stops()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opt.QRSize <= 0 {
		opt.QRSize = 128
	}

	store := journey.NewStore()
	ov, err := overlay.New(store, opt.Logo, opt.Portfolio, opt.QRSize)
	if err != nil {
		return nil, err
	}

	reg := sc.Registry()
	return &Session{
		Scene:      sc,
		Curve:      c,
		Registry:   reg,
		Store:      store,
		Scroll:     scroll.New(sc.Scroll.Pages, sc.Scroll.Damping, store.ScrollEnabled),
		Overlay:    ov,
		Controller: motion.NewController(c, reg, motion.WithGradient(stops), motion.WithLogger(log)),
	}, nil
}

// Step advances the journey by dt seconds for a viewport of the given size.
func (s *Session) Step(dt float64, vp motion.Viewport) (motion.FrameOutputs, overlay.Panels) {
	offset := s.Scroll.Sample(dt)
	out := s.Controller.Update(motion.FrameInput{ScrollOffset: offset, Delta: dt, Viewport: vp}, s.Store)
	return out, s.Overlay.Panels()
}

// WheelPixels is how far one wheel notch scrolls.
const WheelPixels = 100.0

// Input is one frame of user intent, independent of the window toolkit.
type Input struct {
	Wheel   float64 // notches, positive flies forward
	Pixels  float64 // direct scroll distance, e.g. from held keys
	Explore bool    // explore button pressed
}

// Apply feeds input to the overlay and scroll controls of a viewport height
// pixels tall.
func (s *Session) Apply(in Input, height int) {
	if in.Explore {
		s.Overlay.Explore()
	}
	if d := in.Wheel*WheelPixels + in.Pixels; d != 0 {
		s.Scroll.ScrollPixels(d, height)
	}
}
