package video

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ivlev/skyjourney/internal/config"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := &FFmpegEncoder{}

	tests := []struct {
		encoder string
		quality []string
	}{
		{"libx264", []string{"-crf", "23", "-preset", "medium"}},
		{"h264_nvenc", []string{"-cq", "23"}},
		{"h264_videotoolbox", []string{"-b:v", "2300k"}},
	}

	for _, tt := range tests {
		t.Run(tt.encoder, func(t *testing.T) {
			p := config.EncodeParams{Width: 640, Height: 360, FPS: 30, Filter: "scale=640:360", Encoder: tt.encoder, Quality: 23}
			args := e.buildFFmpegArgs("out.mp4", p)

			if args[len(args)-1] != "out.mp4" {
				t.Errorf("output should be last: %v", args)
			}
			if i := slices.Index(args, "-video_size"); i < 0 || args[i+1] != "640x360" {
				t.Errorf("missing video size: %v", args)
			}
			if i := slices.Index(args, "-vf"); i < 0 || args[i+1] != "scale=640:360" {
				t.Errorf("missing filter: %v", args)
			}
			i := slices.Index(args, tt.quality[0])
			if i < 0 || !slices.Equal(args[i:i+len(tt.quality)], tt.quality) {
				t.Errorf("quality args %v not in %v", tt.quality, args)
			}
		})
	}

	noFilter := e.buildFFmpegArgs("out.mp4", config.EncodeParams{Width: 2, Height: 2, FPS: 1, Encoder: "libx264"})
	if slices.Contains(noFilter, "-vf") {
		t.Errorf("empty filter should be omitted: %v", noFilter)
	}
}

func TestWriteRawRGBA(t *testing.T) {
	// sub-image with a non-zero origin must be repacked
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{1, 2, 3, 4})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Fatalf("wrote %d bytes", buf.Len())
	}
	if !bytes.Equal(buf.Bytes()[:4], []byte{1, 2, 3, 4}) {
		t.Errorf("first pixel = %v", buf.Bytes()[:4])
	}
}

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	seq, err := NewPNGSequence(dir)
	if err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 3; i++ {
		if err := seq.WriteFrame(img); err != nil {
			t.Fatal(err)
		}
	}
	if err := seq.Close(); err != nil {
		t.Fatal(err)
	}
	if seq.Frames() != 3 {
		t.Errorf("frames = %d", seq.Frames())
	}

	f, err := os.Open(filepath.Join(dir, "frame_00002.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Errorf("decoded width %d", decoded.Bounds().Dx())
	}
}
