package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/scene"
	"github.com/ivlev/skyjourney/internal/system"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

const (
	cloudRadius   = 2.0   // world radius of a unit-scale cloud
	cloudFarCut   = 320.0 // clouds further than this are skipped
	ribbonFarCut  = 220.0
	textFarCut    = 2 * waypoint.InfluenceDistance
	subtitleWidth = 42 // characters per line
	planeSpan     = 0.9
)

var (
	white     = color.RGBA{255, 255, 255, 255}
	fuselage  = color.RGBA{232, 93, 74, 255}
	wingColor = color.RGBA{245, 245, 245, 255}
	shade     = color.RGBA{0, 0, 0, 140}
)

type sprite struct {
	pos     mgl64.Vec3
	radius  float64
	opacity float64
}

// Renderer draws preview frames of the journey in software. Render is safe
// for concurrent use.
type Renderer struct {
	Width, Height int

	ribbon    []mgl64.Vec3
	ribbonW   float64
	clouds    []sprite
	waypoints []waypoint.Waypoint
	overlay   *overlay.Overlay
	pool      *system.ImagePool
}

// New prepares the static geometry of sc. ov may be nil.
func New(sc *scene.Scene, c *curve.CatmullRom, reg *waypoint.Registry, ov *overlay.Overlay, width, height int) *Renderer {
	r := &Renderer{
		Width:   width,
		Height:  height,
		ribbonW: sc.Ribbon.Width,
		overlay: ov,
		pool:    system.NewImagePool(),
	}
	if reg != nil {
		r.waypoints = reg.All()
	}

	if c != nil {
		lift := mgl64.Vec3{0, sc.Ribbon.Y, 0}
		for _, p := range c.Points(sc.Ribbon.Divisions) {
			r.ribbon = append(r.ribbon, p.Add(lift))
		}
	}

	for i, cl := range sc.Clouds {
		size := math.Max(cl.Scale[0], math.Max(cl.Scale[1], cl.Scale[2]))
		r.clouds = append(r.clouds, sprite{
			pos:     sc.CloudPosition(i),
			radius:  size * cloudRadius,
			opacity: cl.Opacity,
		})
	}
	return r
}

// Bounds is the frame rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// Render draws one frame into a pooled buffer. Hand it back with Release.
func (r *Renderer) Render(out motion.FrameOutputs, panels overlay.Panels) *image.RGBA {
	img := r.pool.Get(r.Bounds())
	cv := newCanvas(img)
	cam := NewCamera(out, r.Width, r.Height)

	top, bottom := out.ColorA, out.ColorB
	if !out.Ready {
		top, bottom = color.RGBA{0x35, 0x7c, 0xa1, 255}, color.RGBA{0xff, 0xad, 0x30, 255}
	}
	cv.gradient(top, bottom)

	if out.Opacity > 0 {
		r.drawClouds(cv, cam, out.Opacity)
		r.drawRibbon(cv, cam, out.Opacity)
		r.drawText(cv, cam, out.Opacity)
	}
	if out.Ready {
		r.drawAirplane(cv, cam, out)
	}
	r.drawPanels(cv, panels)

	return img
}

// Release returns a frame from Render to the pool.
func (r *Renderer) Release(img *image.RGBA) {
	r.pool.Put(img)
}

func (r *Renderer) drawClouds(cv *canvas, cam Camera, opacity float64) {
	type visible struct {
		x, y, radius, depth, alpha float64
	}
	var list []visible
	for _, s := range r.clouds {
		x, y, depth, ok := cam.Project(s.pos)
		if !ok || depth > cloudFarCut {
			continue
		}
		rad := cam.Scale(s.radius, depth)
		if rad < 0.5 || !cam.onScreen(x, y, rad*1.6) {
			continue
		}
		// fade in with distance like the shader fog
		fog := 1 - depth/cloudFarCut
		list = append(list, visible{x, y, rad, depth, s.opacity * opacity * fog})
	}

	// far to near
	sort.Slice(list, func(i, j int) bool { return list[i].depth > list[j].depth })

	for _, v := range list {
		col := alpha(white, v.alpha*0.85)
		cv.circle(v.x, v.y, v.radius, col)
		cv.circle(v.x-v.radius*0.7, v.y+v.radius*0.25, v.radius*0.65, col)
		cv.circle(v.x+v.radius*0.75, v.y+v.radius*0.2, v.radius*0.7, col)
	}
}

func (r *Renderer) drawRibbon(cv *canvas, cam Camera, opacity float64) {
	col := alpha(white, 0.7*opacity)
	var px, py float64
	prev := false
	for _, p := range r.ribbon {
		x, y, depth, ok := cam.Project(p)
		ok = ok && depth < ribbonFarCut
		if ok && prev {
			w := math.Max(cam.Scale(r.ribbonW, depth), 1)
			cv.line(px, py, x, y, w, col)
		}
		px, py, prev = x, y, ok
	}
}

func (r *Renderer) drawText(cv *canvas, cam Camera, opacity float64) {
	for _, wp := range r.waypoints {
		x, y, depth, ok := cam.Project(wp.Position)
		if !ok || depth > textFarCut || !cam.onScreen(x, y, 200) {
			continue
		}
		a := opacity * (1 - depth/textFarCut)
		scale := 1
		if cam.Scale(1, depth) > 60 {
			scale = 2
		}

		ix, iy := int(x), int(y)
		if wp.Title != "" {
			cv.text(wp.Title, ix, iy, scale+1, alpha(white, a))
		}
		for i, line := range wrap(wp.Subtitle, subtitleWidth) {
			cv.text(line, ix, iy+(i+1)*16*scale+6, scale, alpha(white, a))
		}
	}
}

func (r *Renderer) drawAirplane(cv *canvas, cam Camera, out motion.FrameOutputs) {
	x, y, depth, ok := cam.Project(out.AirplanePosition)
	if !ok {
		return
	}
	span := cam.Scale(planeSpan, depth)
	if span < 1 || !cam.onScreen(x, y, span) {
		return
	}

	roll := -mgl64.DegToRad(out.BankDegrees)
	rot := func(dx, dy float64) [2]float64 {
		c, s := math.Cos(roll), math.Sin(roll)
		return [2]float64{x + dx*c - dy*s, y + dx*s + dy*c}
	}

	// shadow, wings, fuselage
	cv.polygon(alpha(shade, 0.4),
		rot(-span, span*0.35), rot(span, span*0.35), rot(0, span*0.55))
	cv.polygon(wingColor,
		rot(-span, span*0.05), rot(span, span*0.05), rot(span*0.9, span*0.18), rot(-span*0.9, span*0.18))
	cv.polygon(fuselage,
		rot(-span*0.14, -span*0.15), rot(span*0.14, -span*0.15), rot(span*0.1, span*0.35), rot(-span*0.1, span*0.35))
	cv.polygon(wingColor,
		rot(-span*0.35, -span*0.22), rot(span*0.35, -span*0.22), rot(0, -span*0.1))
}

func (r *Renderer) drawPanels(cv *canvas, p overlay.Panels) {
	cx, cy := r.Width/2, r.Height/2

	if p.Loader {
		progress := 0.0
		if r.overlay != nil {
			progress = r.overlay.Progress()
		}
		cv.polygon(color.RGBA{0xec, 0xec, 0xec, 255},
			[2]float64{0, 0}, [2]float64{float64(r.Width), 0},
			[2]float64{float64(r.Width), float64(r.Height)}, [2]float64{0, float64(r.Height)})
		label := fmt.Sprintf("Loading %d%%", int(progress))
		cv.text(label, cx-textWidth(label, 2)/2, cy, 2, color.RGBA{0x35, 0x7c, 0xa1, 255})
	}

	if p.Intro {
		logo := "SKY JOURNEY"
		if r.overlay != nil && r.overlay.Logo != "" {
			logo = r.overlay.Logo
		}
		cv.text(logo, cx-textWidth(logo, 4)/2, cy-20, 4, white)
	}

	if p.ExploreActive {
		label := "Explore"
		w := float64(textWidth(label, 2) + 40)
		x0, y0 := float64(cx)-w/2, float64(cy+20)
		cv.polygon(alpha(white, 0.25),
			[2]float64{x0, y0}, [2]float64{x0 + w, y0}, [2]float64{x0 + w, y0 + 44}, [2]float64{x0, y0 + 44})
		cv.text(label, cx-textWidth(label, 2)/2, cy+50, 2, white)
	}

	if p.Outro && r.overlay != nil {
		msg := r.overlay.Message
		cv.text(msg, cx-textWidth(msg, 3)/2, cy-40, 3, white)
		if qr := r.overlay.QRCode(); qr != nil {
			b := qr.Bounds()
			at := image.Pt(cx-b.Dx()/2, cy)
			draw.Draw(cv.dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, qr, b.Min, draw.Src)
		}
	}
}
