package timeline

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop is one pair of background colours.
type GradientStop struct {
	A colorful.Color
	B colorful.Color
}

// ParseStop parses two hex colours such as "#357ca1".
func ParseStop(a, b string) (GradientStop, error) {
	ca, err := colorful.Hex(a)
	if err != nil {
		return GradientStop{}, fmt.Errorf("colour a %q: %w", a, err)
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return GradientStop{}, fmt.Errorf("colour b %q: %w", b, err)
	}
	return GradientStop{A: ca, B: cb}, nil
}

// Gradient holds the two live background colours animated by a timeline.
type Gradient struct {
	A colorful.Color
	B colorful.Color
}

// RGBA returns both colours clamped to 8-bit.
func (g *Gradient) RGBA() (a, b color.RGBA) {
	return toRGBA(g.A), toRGBA(g.B)
}

func (g *Gradient) channels(s GradientStop) []Channel {
	return []Channel{
		Prop(&g.A.R, s.A.R), Prop(&g.A.G, s.A.G), Prop(&g.A.B, s.A.B),
		Prop(&g.B.R, s.B.R), Prop(&g.B.G, s.B.G), Prop(&g.B.B, s.B.B),
	}
}

// NewGradientCue starts g at stops[0] and chains one segment of segment
// seconds per following stop. Colours are blended per RGB channel.
func NewGradientCue(g *Gradient, stops []GradientStop, segment float64) *Timeline {
	tl := New()
	if len(stops) == 0 {
		return tl
	}
	g.A, g.B = stops[0].A, stops[0].B
	for _, s := range stops[1:] {
		tl.Then(segment, Power1Out, g.channels(s)...)
	}
	return tl
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
