package motion

import (
	"github.com/ivlev/skyjourney/internal/timeline"
	"go.uber.org/zap"
)

// Choreography holds the tuning of the one-shot flights.
type Choreography struct {
	IntroDuration float64    // airplane fly-in
	IntroFrom     [2]float64 // airplane offset y, z before the fly-in

	OutroDuration     float64 // airplane climb and pull-away
	OutroRailDuration float64 // camera rail lift
	OutroAirplane     [2]float64
	OutroRailY        float64
	OutroSnapDuration float64 // final dash into the distance
	OutroSnapZ        float64
}

// DefaultChoreography matches the published scene.
func DefaultChoreography() Choreography {
	return Choreography{
		IntroDuration:     3,
		IntroFrom:         [2]float64{-4, 5},
		OutroDuration:     10,
		OutroRailDuration: 8,
		OutroAirplane:     [2]float64{10, -250},
		OutroRailY:        12,
		OutroSnapDuration: 1,
		OutroSnapZ:        -1000,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for journey transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithGradient replaces the background colour stops. Each stop after the first
// takes one second of timeline.
func WithGradient(stops []timeline.GradientStop) Option {
	return func(c *Controller) {
		c.stops = stops
	}
}

// WithChoreography replaces the intro and outro tuning.
func WithChoreography(ch Choreography) Option {
	return func(c *Controller) {
		c.choreo = ch
	}
}

// WithEndMargin sets how far before the last control point's depth the journey ends.
func WithEndMargin(m float64) Option {
	return func(c *Controller) {
		c.endMargin = m
	}
}
