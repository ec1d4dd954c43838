package effects

import (
	"fmt"
	"math"
	"strings"

	"github.com/ivlev/skyjourney/internal/config"
)

// Effect contributes one ffmpeg video filter to the encode chain.
type Effect interface {
	GenerateFilter(params config.EncodeParams) string
}

// Grain is animated film noise. Opacity matches the on-screen noise layer.
type Grain struct {
	Opacity float64
}

func (e *Grain) GenerateFilter(p config.EncodeParams) string {
	if e.Opacity <= 0 {
		return ""
	}
	// noise strength is 0..100; full opacity maps to 100
	strength := int(math.Round(math.Min(e.Opacity, 1) * 100))
	if strength < 1 {
		strength = 1
	}
	return fmt.Sprintf("noise=alls=%d:allf=t+u", strength)
}

// Fade fades the whole session in from and out to black.
type Fade struct {
	In  float64
	Out float64
}

func (e *Fade) GenerateFilter(p config.EncodeParams) string {
	var parts []string
	if e.In > 0 {
		parts = append(parts, fmt.Sprintf("fade=t=in:st=0:d=%.3f", e.In))
	}
	if e.Out > 0 && p.Duration > e.Out {
		parts = append(parts, fmt.Sprintf("fade=t=out:st=%.3f:d=%.3f", p.Duration-e.Out, e.Out))
	}
	return strings.Join(parts, ",")
}

// DebugText stamps the frame number and timestamp in the corner.
type DebugText struct {
	Label string
}

func (e *DebugText) GenerateFilter(p config.EncodeParams) string {
	label := strings.ReplaceAll(e.Label, "'", "")
	label = strings.ReplaceAll(label, ":", "\\:")
	return fmt.Sprintf("drawtext=text='%s | Frame %%{n} | %%{pts\\:hms}':x=10:y=10:fontsize=%d:fontcolor=yellow:box=1:boxcolor=black@0.5",
		label, max(12, p.Height/40))
}

// Chain joins the non-empty filters of effs, ending with a scale to the output size.
func Chain(p config.EncodeParams, effs ...Effect) string {
	var parts []string
	for _, e := range effs {
		if e == nil {
			continue
		}
		if f := e.GenerateFilter(p); f != "" {
			parts = append(parts, f)
		}
	}
	parts = append(parts, fmt.Sprintf("scale=%d:%d", p.Width, p.Height))
	return strings.Join(parts, ",")
}
