package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default scene: %v", err)
	}

	c, err := s.Curve()
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	if got := c.Last(); got != (mgl64.Vec3{0, 0, -1750}) {
		t.Errorf("last control point = %v", got)
	}

	reg := s.Registry()
	if reg.Len() != 4 {
		t.Fatalf("expected 4 waypoints, got %d", reg.Len())
	}

	want := []struct {
		pos  mgl64.Vec3
		bias float64
	}{
		{mgl64.Vec3{-3, 0, -250}, -1},
		{mgl64.Vec3{102, 3, -500}, 1.5},
		{mgl64.Vec3{-103, 0, -750}, -1},
		{mgl64.Vec3{103.5, 2.3, -1010}, 1.5},
	}
	for i, w := range want {
		wp := reg.At(i)
		if wp.Position.Sub(w.pos).Len() > 1e-9 || wp.RailBias != w.bias {
			t.Errorf("waypoint %d: got %v bias %v, want %v bias %v", i, wp.Position, wp.RailBias, w.pos, w.bias)
		}
	}
}

func TestCloudPosition(t *testing.T) {
	s := Default()
	for i, c := range s.Clouds {
		if c.Anchor != 1 {
			continue
		}
		want := mgl64.Vec3{10, -4, -186}
		if got := s.CloudPosition(i); got.Sub(want).Len() > 1e-9 {
			t.Errorf("cloud %d at %v, want %v", i, got, want)
		}
		return
	}
	t.Fatal("no cloud anchored to the first point")
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	in := Default()

	if err := Write(in, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(out.Path.Points) != len(in.Path.Points) || len(out.Clouds) != len(in.Clouds) {
		t.Errorf("lost data: %d points %d clouds", len(out.Path.Points), len(out.Clouds))
	}
	if out.Waypoints[1].Subtitle != in.Waypoints[1].Subtitle {
		t.Error("multi-line subtitle did not survive the round trip")
	}
	if out.Scroll != in.Scroll {
		t.Errorf("scroll = %+v, want %+v", out.Scroll, in.Scroll)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scene)
	}{
		{"one point", func(s *Scene) { s.Path.Points = s.Path.Points[:1] }},
		{"waypoint anchor", func(s *Scene) { s.Waypoints[0].Anchor = 8 }},
		{"cloud anchor", func(s *Scene) { s.Clouds[0].Anchor = -1 }},
		{"cloud opacity", func(s *Scene) { s.Clouds[0].Opacity = 1.5 }},
		{"ribbon", func(s *Scene) { s.Ribbon.Divisions = 0 }},
		{"no background", func(s *Scene) { s.Background = nil }},
		{"bad colour", func(s *Scene) { s.Background[0].A = "sky" }},
		{"pages", func(s *Scene) { s.Scroll.Pages = 0 }},
		{"damping", func(s *Scene) { s.Scroll.Damping = -1 }},
		{"grain", func(s *Scene) { s.Grain = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	s := Default()
	s.Ribbon.Divisions = 0
	if err := Write(s, path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}
