package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/skyjourney/internal/config"
	"github.com/ivlev/skyjourney/internal/effects"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/renderer"
	"github.com/ivlev/skyjourney/internal/scene"
	"github.com/ivlev/skyjourney/internal/session"
	"github.com/ivlev/skyjourney/internal/system"
	"github.com/ivlev/skyjourney/internal/video"
)

// DefaultDuration is the session length when neither a script nor the config sets one.
const DefaultDuration = 40.0

// ErrNoFrames is returned when a session produces nothing to encode.
var ErrNoFrames = errors.New("no frames to render")

type VideoProject struct {
	Config  *config.Config
	Scene   *scene.Scene
	Encoder video.VideoEncoder
	Effects []effects.Effect
	Log     *zap.Logger
}

func NewVideoProject(cfg *config.Config, sc *scene.Scene, ve video.VideoEncoder, log *zap.Logger, effs ...effects.Effect) *VideoProject {
	if log == nil {
		log = zap.NewNop()
	}
	return &VideoProject{
		Config:  cfg,
		Scene:   sc,
		Encoder: ve,
		Effects: effs,
		Log:     log,
	}
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	s, err := session.New(p.Scene, session.Options{
		Portfolio: p.Config.Portfolio,
		QRSize:    min(p.Config.Width, p.Config.Height) / 5,
		Logger:    p.Log,
	})
	if err != nil {
		return err
	}

	s.Store.OnBegin(func() { p.Log.Info("journey began") })
	s.Store.OnEnd(func() { p.Log.Info("journey ended") })

	// Обработка сценариев
	if p.Config.GenerateScript {
		return p.handleGenerateScript(s)
	}

	script, err := p.loadScript(s)
	if err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: SKY JOURNEY] ---")
	fmt.Printf("[*] Сцена: %s | Точек пути: %d | Вех: %d\n", sceneName(p.Config.ScenePath), len(p.Scene.Path.Points), s.Registry.Len())
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Длительность: %.2fs\n", p.Config.Width, p.Config.Height, p.Config.FPS, script.Duration)
	fmt.Println("-----------------------------")

	simStart := time.Now()
	vp := motion.Viewport{Width: p.Config.Width, Height: p.Config.Height}
	frames := Simulate(s, script, p.Config.FPS, vp)
	simTime := time.Since(simStart)
	if len(frames) == 0 {
		return ErrNoFrames
	}
	for _, f := range frames {
		if f.Out.Terminated {
			fmt.Printf("[*] Финиш на кадре %d (%.2fs), далее %.2fs финальной сцены\n", f.Index, f.Time, script.Duration-f.Time)
			break
		}
	}
	p.Log.Debug("simulation done",
		zap.Int("frames", len(frames)),
		zap.Duration("took", simTime),
		zap.Stringer("state", s.Store.State()),
	)

	params := p.Config.Params(script.Duration, "")
	params.Filter = effects.Chain(params, p.Effects...)

	sink, target, err := p.openSink(ctx, params)
	if err != nil {
		return err
	}

	r := renderer.New(p.Scene, s.Curve, s.Registry, s.Overlay, p.Config.Width, p.Config.Height)

	renderStart := time.Now()
	written, err := renderFrames(ctx, r, frames, sink, p.Config.Workers, func(done int) {
		fmt.Printf("[>] Ready: %d/%d\n", done, len(frames))
	})
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("ошибка сборки финального видео: %w", cerr)
	}
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	fmt.Printf("[+++] Готово: %s (%d кадров)\n", target, written)

	if p.Config.ShowStats {
		p.report(startTime, simTime, renderTime, written)
	}
	return nil
}

func (p *VideoProject) openSink(ctx context.Context, params config.EncodeParams) (video.FrameWriter, string, error) {
	if p.Config.FramesDir != "" {
		seq, err := video.NewPNGSequence(p.Config.FramesDir)
		return seq, p.Config.FramesDir, err
	}
	if p.Encoder == nil {
		return nil, "", errors.New("no video encoder configured")
	}
	w, err := p.Encoder.Open(ctx, p.Config.OutputVideo, params)
	return w, p.Config.OutputVideo, err
}

// renderFrames rasterises frames on a bounded pool and hands them to sink in
// order. Frames are rendered in batches so only a few buffers are live at once.
func renderFrames(ctx context.Context, r *renderer.Renderer, frames []Frame, sink video.FrameWriter, workers int, progress func(done int)) (int, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	batch := workers * 2
	imgs := make([]*image.RGBA, batch)

	written := 0
	for start := 0; start < len(frames); start += batch {
		end := min(start+batch, len(frames))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				imgs[i-start] = r.Render(frames[i].Out, frames[i].Panels)
				return nil
			})
		}
		err := g.Wait()

		for j := 0; j < end-start; j++ {
			img := imgs[j]
			imgs[j] = nil
			if img == nil {
				continue
			}
			if err == nil {
				if werr := sink.WriteFrame(img); werr != nil {
					err = fmt.Errorf("frame %d: %w", start+j, werr)
				} else {
					written++
				}
			}
			r.Release(img)
		}
		if err != nil {
			return written, err
		}
		if progress != nil {
			progress(written)
		}
	}
	return written, nil
}

func (p *VideoProject) report(startTime time.Time, simTime, renderTime time.Duration, frames int) {
	totalTime := time.Since(startTime)
	fps := float64(frames) / totalTime.Seconds()
	host := system.ReadHostStats()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Simulation: %.2fs\n"+
			"Rendering + Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), simTime.Seconds(), renderTime.Seconds(), fps, host,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Scene: %s | Frames: %d | Total: %.2fs | Sim: %.2fs | Render: %.2fs | FPS: %.2f | CPU: %.1f%%\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		sceneName(p.Config.ScenePath),
		frames,
		totalTime.Seconds(),
		simTime.Seconds(),
		renderTime.Seconds(),
		fps,
		host.CPUPercent,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		return
	}
	defer f.Close()
	f.WriteString(logEntry)
}

func sceneName(path string) string {
	if path == "" {
		return "default"
	}
	return filepath.Base(path)
}
