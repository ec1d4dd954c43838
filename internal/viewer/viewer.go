package viewer

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/renderer"
	"github.com/ivlev/skyjourney/internal/session"
)

const (
	keyScrollSpeed = 900.0 // pixels per second while an arrow key is held
	loadSeconds    = 0.8   // time the loader takes to reach 100%
)

// Game shows a session in a window. Wheel and arrow keys scroll, Enter or a
// click presses explore, Escape quits.
type Game struct {
	s   *session.Session
	r   *renderer.Renderer
	log *zap.Logger

	width, height int

	out    motion.FrameOutputs
	panels overlay.Panels
}

func New(s *session.Session, width, height int, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		s:      s,
		r:      renderer.New(s.Scene, s.Curve, s.Registry, s.Overlay, width, height),
		log:    log,
		width:  width,
		height: height,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.log.Info("viewer closed", zap.Stringer("state", g.s.Store.State()))
		return ebiten.Termination
	}

	dt := 1 / float64(ebiten.TPS())

	if p := g.s.Overlay.Progress(); p < overlay.Loaded {
		g.s.Overlay.SetProgress(math.Min(p+overlay.Loaded*dt/loadSeconds, overlay.Loaded))
	}

	// wheel y is positive when scrolling up
	_, wy := ebiten.Wheel()
	in := session.Input{
		Wheel:   -wy,
		Explore: inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Pixels += keyScrollSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Pixels -= keyScrollSpeed * dt
	}
	g.s.Apply(in, g.height)

	g.out, g.panels = g.s.Step(dt, motion.Viewport{Width: g.width, Height: g.height})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	img := g.r.Render(g.out, g.panels)
	defer g.r.Release(img)
	screen.WritePixels(img.Pix)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)

	g.log.Info("viewer started", zap.Int("width", g.width), zap.Int("height", g.height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
