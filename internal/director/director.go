package director

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

// ErrNoWaypoints is returned when there is nothing to stop at.
var ErrNoWaypoints = errors.New("no waypoints")

// Director generates scroll scripts that pause at every waypoint
type Director struct {
	MinDwell   float64 // Minimum time per waypoint (seconds)
	MaxDwell   float64 // Maximum time per waypoint (seconds)
	Intro      float64 // Idle time before the journey begins
	Outro      float64 // Time kept after the last keyframe for the fly-out
	Resolution int     // Curve samples used to place waypoints
}

// NewDirector creates a new Director with default settings
func NewDirector() *Director {
	return &Director{
		MinDwell:   1.0,
		MaxDwell:   3.0,
		Intro:      1.0,
		Outro:      11.0,
		Resolution: 1000,
	}
}

type stop struct {
	index  int
	offset float64
	title  string
}

// GenerateScript creates a session of totalDuration seconds that scrolls from
// the start of the path to its end, holding at each waypoint.
func (d *Director) GenerateScript(c *curve.CatmullRom, reg *waypoint.Registry, totalDuration float64) (*Script, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, ErrNoWaypoints
	}
	if c == nil {
		return nil, fmt.Errorf("generate script: %w", curve.ErrTooFewPoints)
	}

	stops := d.placeStops(c, reg)

	// Time left for flying after intro and outro
	flight := totalDuration - d.Intro - d.Outro
	if flight <= 0 {
		flight = totalDuration
	}

	dwell := d.calculateDwellTime(flight, len(stops))
	travel := flight - dwell*float64(len(stops))
	if travel < 0 {
		travel = 0
	}

	keyframes := d.generateKeyframes(stops, dwell, travel)

	return &Script{
		Version:   "1.0",
		Begin:     d.Intro,
		Duration:  keyframes[len(keyframes)-1].Time + d.Outro,
		Keyframes: keyframes,
	}, nil
}

// placeStops finds the scroll offset closest to each waypoint, in path order
func (d *Director) placeStops(c *curve.CatmullRom, reg *waypoint.Registry) []stop {
	res := d.Resolution
	if res < 1 {
		res = 1000
	}
	samples := c.Points(res)

	stops := make([]stop, 0, reg.Len())
	for i, wp := range reg.All() {
		best, bestDist := 0, -1.0
		for j, p := range samples {
			dist := p.Sub(wp.Position).Len()
			if bestDist < 0 || dist < bestDist {
				best, bestDist = j, dist
			}
		}
		title := wp.Title
		if title == "" {
			title = fmt.Sprintf("waypoint_%d", i+1)
		}
		stops = append(stops, stop{index: i, offset: float64(best) / float64(res), title: title})
	}

	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].offset < stops[j].offset
	})
	return stops
}

// calculateDwellTime determines how long to hold at each waypoint
func (d *Director) calculateDwellTime(flight float64, count int) float64 {
	// Half of the flight is spent holding
	dwell := flight / 2 / float64(count)

	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}
	return dwell
}

// generateKeyframes spreads travel time by scroll distance between holds
func (d *Director) generateKeyframes(stops []stop, dwell, travel float64) []Keyframe {
	keyframes := []Keyframe{{Time: 0, Focus: "start", Offset: 0}}

	currentTime := d.Intro
	keyframes = append(keyframes, Keyframe{Time: currentTime, Focus: "begin", Offset: 0})

	prev := 0.0
	for _, s := range stops {
		currentTime += travel * (s.offset - prev)
		keyframes = append(keyframes, Keyframe{Time: currentTime, Focus: s.title, Offset: s.offset})

		currentTime += dwell
		keyframes = append(keyframes, Keyframe{Time: currentTime, Focus: s.title, Offset: s.offset})
		prev = s.offset
	}

	currentTime += travel * (1 - prev)
	keyframes = append(keyframes, Keyframe{Time: currentTime, Focus: "finish", Offset: 1})

	return keyframes
}
