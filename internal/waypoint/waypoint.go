package waypoint

import "github.com/go-gl/mathgl/mgl64"

// InfluenceDistance is the radius inside which a waypoint pulls the camera rail
// and slows the camera down. Shared by all waypoints.
const InfluenceDistance = 42.0

// MinFriction bounds how much a waypoint can slow the camera.
const MinFriction = 0.1

// Waypoint is a narrative anchor along the flight path.
type Waypoint struct {
	Position mgl64.Vec3
	RailBias float64 // lateral rail offset at zero distance
	Title    string  // optional
	Subtitle string
}

// Influence is the result of testing a camera position against the registry.
type Influence struct {
	Target   float64 // lateral rail target along the rail axis
	Friction float64 // 1 when nothing is in range
	InRange  bool
	Index    int // last in-range waypoint, -1 when none
}

// Registry is an ordered, read-only list of waypoints.
type Registry struct {
	waypoints []Waypoint
}

// NewRegistry copies wps into a registry.
func NewRegistry(wps []Waypoint) *Registry {
	cp := make([]Waypoint, len(wps))
	copy(cp, wps)
	return &Registry{waypoints: cp}
}

// Len returns the number of waypoints.
func (r *Registry) Len() int { return len(r.waypoints) }

// At returns the waypoint at index i.
func (r *Registry) At(i int) Waypoint { return r.waypoints[i] }

// All returns a copy of the waypoints in order.
func (r *Registry) All() []Waypoint {
	cp := make([]Waypoint, len(r.waypoints))
	copy(cp, r.waypoints)
	return cp
}

// Influence evaluates every waypoint in order. Each one inside InfluenceDistance
// overwrites the previous target and friction, so the last in-range waypoint wins.
func (r *Registry) Influence(pos mgl64.Vec3) Influence {
	inf := Influence{Friction: 1, Index: -1}

	for i, wp := range r.waypoints {
		d := wp.Position.Sub(pos).Len()
		if d >= InfluenceDistance {
			continue
		}
		ratio := d / InfluenceDistance
		inf.Target = (1 - ratio) * wp.RailBias
		inf.Friction = max(ratio, MinFriction)
		inf.InRange = true
		inf.Index = i
	}

	return inf
}
