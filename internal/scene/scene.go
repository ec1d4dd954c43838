package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/timeline"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

// ErrInvalid is returned for scenes that cannot be built.
var ErrInvalid = errors.New("invalid scene")

// Vec is a 3D vector written as a YAML flow sequence.
type Vec [3]float64

// V converts to mgl64.
func (v Vec) V() mgl64.Vec3 { return mgl64.Vec3(v) }

// Scene describes everything placed along the flight path.
type Scene struct {
	Version    string    `yaml:"version"`
	Path       Path      `yaml:"path"`
	Waypoints  []Section `yaml:"waypoints"`
	Clouds     []Cloud   `yaml:"clouds"`
	Ribbon     Ribbon    `yaml:"ribbon"`
	Background []Stop    `yaml:"background"`
	Scroll     Scroll    `yaml:"scroll"`
	Grain      float64   `yaml:"grain"` // film noise opacity
	Portfolio  string    `yaml:"portfolio,omitempty"`
}

// Path is the control polygon of the flight curve.
type Path struct {
	Points  []Vec   `yaml:"points,flow"`
	Tension float64 `yaml:"tension"`
}

// Section is a text panel anchored to a control point.
type Section struct {
	Anchor   int     `yaml:"anchor"`
	Offset   Vec     `yaml:"offset,flow"`
	RailBias float64 `yaml:"rail_bias"`
	Title    string  `yaml:"title,omitempty"`
	Subtitle string  `yaml:"subtitle"`
}

// Cloud is a decorative billboard. Rotation is Euler XYZ in radians.
type Cloud struct {
	Anchor   int     `yaml:"anchor"`
	Offset   Vec     `yaml:"offset,flow"`
	Scale    Vec     `yaml:"scale,flow"`
	Rotation Vec     `yaml:"rotation,flow"`
	Opacity  float64 `yaml:"opacity"`
}

// Ribbon is the line drawn along the curve.
type Ribbon struct {
	Divisions int     `yaml:"divisions"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
}

// Stop is one pair of background colours.
type Stop struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Scroll configures the page-based scroll area.
type Scroll struct {
	Pages   float64 `yaml:"pages"`
	Damping float64 `yaml:"damping"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Write stores the scene as YAML.
func Write(s *Scene, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks anchors, ranges and colours.
func (s *Scene) Validate() error {
	n := len(s.Path.Points)
	if n < 2 {
		return fmt.Errorf("%w: path needs at least 2 points, got %d", ErrInvalid, n)
	}
	for i, wp := range s.Waypoints {
		if wp.Anchor < 0 || wp.Anchor >= n {
			return fmt.Errorf("%w: waypoint %d anchor %d out of range", ErrInvalid, i, wp.Anchor)
		}
	}
	for i, c := range s.Clouds {
		if c.Anchor < 0 || c.Anchor >= n {
			return fmt.Errorf("%w: cloud %d anchor %d out of range", ErrInvalid, i, c.Anchor)
		}
		if c.Opacity < 0 || c.Opacity > 1 {
			return fmt.Errorf("%w: cloud %d opacity %.2f", ErrInvalid, i, c.Opacity)
		}
	}
	if s.Ribbon.Divisions < 1 {
		return fmt.Errorf("%w: ribbon divisions must be positive", ErrInvalid)
	}
	if len(s.Background) == 0 {
		return fmt.Errorf("%w: background needs at least one stop", ErrInvalid)
	}
	if _, err := s.Stops(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.Scroll.Pages < 1 || s.Scroll.Damping < 0 {
		return fmt.Errorf("%w: scroll pages %.1f damping %.2f", ErrInvalid, s.Scroll.Pages, s.Scroll.Damping)
	}
	if s.Grain < 0 || s.Grain > 1 {
		return fmt.Errorf("%w: grain %.2f", ErrInvalid, s.Grain)
	}
	return nil
}

// Curve builds the flight path.
func (s *Scene) Curve() (*curve.CatmullRom, error) {
	pts := make([]mgl64.Vec3, len(s.Path.Points))
	for i, p := range s.Path.Points {
		pts[i] = p.V()
	}
	return curve.New(pts, s.Path.Tension)
}

// Registry resolves waypoint anchors into world positions.
func (s *Scene) Registry() *waypoint.Registry {
	wps := make([]waypoint.Waypoint, len(s.Waypoints))
	for i, sec := range s.Waypoints {
		wps[i] = waypoint.Waypoint{
			Position: s.anchor(sec.Anchor).Add(sec.Offset.V()),
			RailBias: sec.RailBias,
			Title:    sec.Title,
			Subtitle: sec.Subtitle,
		}
	}
	return waypoint.NewRegistry(wps)
}

// CloudPosition returns the world position of cloud i.
func (s *Scene) CloudPosition(i int) mgl64.Vec3 {
	c := s.Clouds[i]
	return s.anchor(c.Anchor).Add(c.Offset.V())
}

// Stops parses the background colours.
func (s *Scene) Stops() ([]timeline.GradientStop, error) {
	stops := make([]timeline.GradientStop, 0, len(s.Background))
	for _, st := range s.Background {
		gs, err := timeline.ParseStop(st.A, st.B)
		if err != nil {
			return nil, err
		}
		stops = append(stops, gs)
	}
	return stops, nil
}

func (s *Scene) anchor(i int) mgl64.Vec3 {
	if i < 0 || i >= len(s.Path.Points) {
		return mgl64.Vec3{}
	}
	return s.Path.Points[i].V()
}
