package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/skyjourney/internal/journey"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/scene"
)

func TestProjectCenter(t *testing.T) {
	cam := NewCamera(motion.FrameOutputs{}, 800, 600)

	x, y, depth, ok := cam.Project(mgl64.Vec3{0, 0, -10})
	if !ok {
		t.Fatal("point in front of the camera should project")
	}
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("projected to (%.2f, %.2f), want centre", x, y)
	}
	// landscape resting lens sits at z=5
	if math.Abs(depth-15) > 1e-6 {
		t.Errorf("depth = %v, want 15", depth)
	}

	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 10}); ok {
		t.Error("point behind the camera must not project")
	}

	// up is up on screen
	_, yUp, _, _ := cam.Project(mgl64.Vec3{0, 1, -10})
	if yUp >= 300 {
		t.Errorf("world +Y should move up the screen, got y=%.2f", yUp)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("alpha beta gamma\n\ndelta", 11)
	want := []string{"alpha beta", "gamma", "delta"}
	if len(lines) != len(want) {
		t.Fatalf("wrap = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTextScaled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 60))
	cv := newCanvas(img)
	cv.text("Hi • there", 10, 40, 3, white)

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("scaled text drew nothing")
	}
}

func TestPolygonClipsToFrame(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	cv := newCanvas(img)
	cv.polygon(color.RGBA{255, 0, 0, 255}, [2]float64{-5, -5}, [2]float64{20, -5}, [2]float64{20, 20}, [2]float64{-5, 20})

	if got := img.RGBAAt(5, 5); got.R != 255 || got.A != 255 {
		t.Errorf("pixel = %v, want solid red", got)
	}

	// fully outside
	cv.polygon(color.RGBA{0, 255, 0, 255}, [2]float64{50, 50}, [2]float64{60, 50}, [2]float64{60, 60})
	if got := img.RGBAAt(9, 9); got.G != 0 {
		t.Errorf("off-frame polygon leaked: %v", got)
	}
}

func TestRenderFrame(t *testing.T) {
	sc := scene.Default()
	c, err := sc.Curve()
	if err != nil {
		t.Fatal(err)
	}
	reg := sc.Registry()
	store := journey.NewStore()
	ov, err := overlay.New(store, "SKY", "https://example.com", 64)
	if err != nil {
		t.Fatal(err)
	}
	r := New(sc, c, reg, ov, 320, 180)

	// before the controller is ready: resting gradient and loader
	img := r.Render(motion.FrameOutputs{}, overlay.Panels{})
	if img.Bounds() != r.Bounds() {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(0, 179) {
		t.Error("background should be a vertical gradient")
	}
	r.Release(img)

	ctrl := motion.NewController(c, reg)
	store.Begin()
	var out motion.FrameOutputs
	for i := 0; i < 120; i++ {
		out = ctrl.Update(motion.FrameInput{ScrollOffset: 0.02, Delta: 1.0 / 10, Viewport: motion.Viewport{Width: 320, Height: 180}}, store)
	}
	if out.Opacity <= 0 {
		t.Fatalf("opacity did not rise: %v", out.Opacity)
	}

	img = r.Render(out, ov.Panels())
	defer r.Release(img)
	if img.Bounds().Dx() != 320 {
		t.Errorf("width %d", img.Bounds().Dx())
	}
}

func TestRenderOutroDrawsQRCode(t *testing.T) {
	sc := scene.Default()
	store := journey.NewStore()
	ov, err := overlay.New(store, "", "https://example.com", 40)
	if err != nil {
		t.Fatal(err)
	}
	r := New(sc, nil, nil, ov, 200, 200)

	img := r.Render(motion.FrameOutputs{}, overlay.Panels{Outro: true})
	defer r.Release(img)

	// the QR code is black and white, the sky never is pure black
	black := 0
	for y := 100; y < 140; y++ {
		for x := 80; x < 120; x++ {
			if c := img.RGBAAt(x, y); c.R == 0 && c.G == 0 && c.B == 0 {
				black++
			}
		}
	}
	if black == 0 {
		t.Error("no QR modules drawn")
	}
}
