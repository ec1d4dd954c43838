package engine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ivlev/skyjourney/internal/director"
	"github.com/ivlev/skyjourney/internal/journey"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/session"
)

// Frame is one simulated frame, ready to be rasterised.
type Frame struct {
	Index  int
	Time   float64
	Focus  string
	Out    motion.FrameOutputs
	Panels overlay.Panels
}

// Simulate plays script through s at a fixed frame rate. Frames depend on the
// previous one, so this runs sequentially; only rasterisation fans out.
func Simulate(s *session.Session, script *director.Script, fps int, vp motion.Viewport) []Frame {
	if s == nil || script == nil || fps <= 0 || script.Duration <= 0 {
		return nil
	}

	dt := 1 / float64(fps)
	n := int(math.Round(script.Duration * float64(fps)))
	frames := make([]Frame, 0, n)

	// offline, everything is loaded before the first frame
	s.Overlay.SetProgress(overlay.Loaded)

	for i := 0; i < n; i++ {
		t := float64(i) * dt
		if t >= script.Begin && s.Store.State() == journey.Idle {
			s.Overlay.Explore()
		}
		s.Scroll.Publish(director.OffsetAt(script.Keyframes, t))

		out, panels := s.Step(dt, vp)
		frames = append(frames, Frame{
			Index:  i,
			Time:   t,
			Focus:  director.Focus(script.Keyframes, t),
			Out:    out,
			Panels: panels,
		})
	}
	return frames
}

// scaleScript stretches script to total seconds, aligning keyframes to frames.
func scaleScript(script *director.Script, total float64, fps int) {
	if script.Duration <= 0 || total <= 0 {
		return
	}
	scale := total / script.Duration
	align := func(t float64) float64 {
		if fps <= 0 {
			return t
		}
		return math.Round(t*float64(fps)) / float64(fps)
	}

	script.Begin = align(script.Begin * scale)
	for i := range script.Keyframes {
		script.Keyframes[i].Time = align(script.Keyframes[i].Time * scale)
	}
	script.Duration = total
}

// loadScript resolves the scroll script for the session: a file, the newest
// file in the scripts directory ("latest"), or a freshly generated one.
func (p *VideoProject) loadScript(s *session.Session) (*director.Script, error) {
	path := p.Config.ScriptPath
	if path == "latest" {
		latest, err := director.FindLatestScript(director.ScriptsDir)
		if err != nil {
			return nil, err
		}
		path = latest
	}

	if path != "" {
		script, err := director.ReadScript(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сценария: %w", err)
		}
		fmt.Printf("[*] Используется сценарий: %s\n", path)

		if p.Config.TotalDuration > 0 && p.Config.TotalDuration != script.Duration {
			fmt.Printf("[*] Сценарий масштабирован (x%.3f): %.2fs\n", p.Config.TotalDuration/script.Duration, p.Config.TotalDuration)
			scaleScript(script, p.Config.TotalDuration, p.Config.FPS)
		}
		return script, nil
	}

	return director.NewDirector().GenerateScript(s.Curve, s.Registry, p.totalDuration())
}

func (p *VideoProject) totalDuration() float64 {
	if p.Config.TotalDuration > 0 {
		return p.Config.TotalDuration
	}
	return DefaultDuration
}

func (p *VideoProject) handleGenerateScript(s *session.Session) error {
	fmt.Println("[*] Режим генерации сценария...")

	script, err := director.NewDirector().GenerateScript(s.Curve, s.Registry, p.totalDuration())
	if err != nil {
		return err
	}
	script.Scene = p.Config.ScenePath

	outputPath := p.Config.ScriptOutput
	if outputPath == "" {
		outputPath = director.GenerateScriptPath()
	}

	// Убеждаемся, что директория существует
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	if err := director.WriteScript(script, outputPath); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Сценарий сохранен: %s (%d ключевых кадров, %.1fs)\n", outputPath, len(script.Keyframes), script.Duration)
	return nil
}
