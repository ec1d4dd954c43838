package renderer

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// canvas wraps a frame with a reusable rasterizer. Not safe for concurrent use.
type canvas struct {
	dst *image.RGBA
	ras *vector.Rasterizer
}

func newCanvas(dst *image.RGBA) *canvas {
	return &canvas{dst: dst, ras: vector.NewRasterizer(1, 1)}
}

// gradient paints a vertical blend from top to bottom.
func (c *canvas) gradient(top, bottom color.RGBA) {
	a, _ := colorful.MakeColor(top)
	b, _ := colorful.MakeColor(bottom)

	bounds := c.dst.Bounds()
	h := bounds.Dy()
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
		row := c.dst.Pix[y*c.dst.Stride : y*c.dst.Stride+bounds.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = r, g, bl, 255
		}
	}
}

// polygon fills pts. The rasterizer only covers the clipped bounding box.
func (c *canvas) polygon(col color.Color, pts ...[2]float64) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(c.dst.Bounds())
	if box.Empty() {
		return
	}

	c.ras.Reset(box.Dx(), box.Dy())
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.ras.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, p := range pts[1:] {
		c.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	c.ras.ClosePath()
	c.ras.Draw(c.dst, box, image.NewUniform(col), image.Point{})
}

func (c *canvas) circle(x, y, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	const segments = 24
	pts := make([][2]float64, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = [2]float64{x + r*math.Cos(a), y + r*math.Sin(a)}
	}
	c.polygon(col, pts...)
}

// line draws a thick segment as a quad.
func (c *canvas) line(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.polygon(col,
		[2]float64{x0 + nx, y0 + ny},
		[2]float64{x1 + nx, y1 + ny},
		[2]float64{x1 - nx, y1 - ny},
		[2]float64{x0 - nx, y0 - ny},
	)
}

// text draws s with its baseline at (x,y). scale > 1 enlarges the bitmap font.
func (c *canvas) text(s string, x, y, scale int, col color.Color) {
	face := basicfont.Face7x13
	s = plain(s)
	if scale <= 1 {
		d := font.Drawer{Dst: c.dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
		return
	}

	w := font.MeasureString(face, s).Ceil()
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d := font.Drawer{Dst: tmp, Src: image.NewUniform(col), Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(s)

	dr := image.Rect(x, y-face.Ascent*scale, x+w*scale, y+face.Descent*scale)
	xdraw.NearestNeighbor.Scale(c.dst, dr, tmp, tmp.Bounds(), xdraw.Over, nil)
}

// textWidth returns the pixel width of s at scale.
func textWidth(s string, scale int) int {
	return font.MeasureString(basicfont.Face7x13, plain(s)).Ceil() * max(scale, 1)
}

// plain maps characters the bitmap font lacks.
func plain(s string) string {
	return strings.NewReplacer("•", "-", "’", "'", "…", "...").Replace(s)
}

// wrap splits s into lines of at most width characters, keeping explicit breaks.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

func alpha(col color.RGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	return color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(math.Round(a * float64(col.A)))}
}
