package config

import "testing"

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset string
		w, h   int
	}{
		{"", 640, 480},
		{"16:9", 1280, 720},
		{"9:16", 720, 1280},
		{"4:5", 1080, 1350},
		{"unknown", 640, 480},
	}
	for _, tt := range tests {
		c := &Config{Width: 640, Height: 480, Preset: tt.preset}
		c.ApplyPreset()
		if c.Width != tt.w || c.Height != tt.h {
			t.Errorf("preset %q: %dx%d, want %dx%d", tt.preset, c.Width, c.Height, tt.w, tt.h)
		}
	}
}

func TestParams(t *testing.T) {
	c := &Config{Width: 1280, Height: 720, FPS: 30, VideoEncoder: "libx264", Quality: 23}
	p := c.Params(12.5, "noise=alls=10")
	if p.Width != 1280 || p.FPS != 30 || p.Duration != 12.5 || p.Filter != "noise=alls=10" || p.Encoder != "libx264" || p.Quality != 23 {
		t.Errorf("unexpected params %+v", p)
	}
}
