package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ivlev/skyjourney/internal/config"
)

// FrameWriter consumes frames in presentation order.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// VideoEncoder opens a sink for one session.
type VideoEncoder interface {
	Open(ctx context.Context, path string, params config.EncodeParams) (FrameWriter, error)
}

type FFmpegEncoder struct{}

// Open starts ffmpeg reading raw RGBA frames from stdin.
func (e *FFmpegEncoder) Open(ctx context.Context, videoPath string, params config.EncodeParams) (FrameWriter, error) {
	if err := os.MkdirAll(filepath.Dir(videoPath), 0755); err != nil {
		return nil, err
	}

	args := e.buildFFmpegArgs(videoPath, params)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	s := &Stream{cmd: cmd, width: params.Width, height: params.Height}
	cmd.Stdout = &s.log
	cmd.Stderr = &s.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(videoPath string, params config.EncodeParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	if params.Filter != "" {
		args = append(args, "-vf", params.Filter)
	}
	args = append(args,
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", params.Encoder,
	)

	// Качество в зависимости от энкодера
	switch params.Encoder {
	case "h264_videotoolbox":
		bitrate := params.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

// Stream is a running ffmpeg process fed through stdin.
type Stream struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	log    bytes.Buffer
	width  int
	height int
	frames int
}

func (s *Stream) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame %d is %dx%d, stream is %dx%d", s.frames, b.Dx(), b.Dy(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	s.frames++
	return nil
}

// Close flushes stdin and waits for ffmpeg to finish the file.
func (s *Stream) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.log.String())
	}
	return nil
}

// Frames returns how many frames were written.
func (s *Stream) Frames() int { return s.frames }

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

// PNGSequence writes numbered PNG files into a directory.
type PNGSequence struct {
	Dir    string
	Prefix string
	frames int
}

// NewPNGSequence creates dir if needed.
func NewPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &PNGSequence{Dir: dir, Prefix: "frame_"}, nil
}

func (p *PNGSequence) WriteFrame(img image.Image) error {
	path := filepath.Join(p.Dir, fmt.Sprintf("%s%05d.png", p.Prefix, p.frames))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	p.frames++
	return f.Close()
}

func (p *PNGSequence) Close() error { return nil }

// Frames returns how many frames were written.
func (p *PNGSequence) Frames() int { return p.frames }
