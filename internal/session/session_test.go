package session

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/skyjourney/internal/journey"
	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
	"github.com/ivlev/skyjourney/internal/scene"
)

var vp = motion.Viewport{Width: 1280, Height: 720}

func TestNewRejectsInvalidScene(t *testing.T) {
	sc := scene.Default()
	sc.Path.Points = sc.Path.Points[:1]

	if _, err := New(sc, Options{}); !errors.Is(err, scene.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestScrollGatedByJourney(t *testing.T) {
	s, err := New(scene.Default(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	s.Scroll.Publish(0.5)
	for i := 0; i < 30; i++ {
		s.Step(1.0/30, vp)
	}
	if s.Scroll.Offset() != 0 {
		t.Fatalf("scrolled before the journey began: %v", s.Scroll.Offset())
	}

	// explore is inactive until loaded
	if s.Overlay.Explore() {
		t.Fatal("explore should need loaded assets")
	}
	s.Overlay.SetProgress(overlay.Loaded)
	if !s.Overlay.Explore() {
		t.Fatal("explore did not begin the journey")
	}
	if s.Store.State() != journey.Playing {
		t.Fatalf("state = %v", s.Store.State())
	}

	s.Scroll.Publish(0.5)
	var out motion.FrameOutputs
	var panels overlay.Panels
	for i := 0; i < 120; i++ {
		out, panels = s.Step(1.0/30, vp)
	}
	if out.Offset < 0.45 {
		t.Errorf("offset = %v, want near 0.5", out.Offset)
	}
	if panels.Intro || panels.Loader || panels.Outro {
		t.Errorf("no panel should show mid-flight: %+v", panels)
	}
}

func TestFullScrollEndsJourney(t *testing.T) {
	s, err := New(scene.Default(), Options{Portfolio: "https://example.com", QRSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	if s.Overlay.QRCode() == nil {
		t.Fatal("portfolio link should produce a QR code")
	}

	s.Overlay.SetProgress(overlay.Loaded)
	s.Overlay.Explore()
	s.Scroll.Publish(1)

	var panels overlay.Panels
	for i := 0; i < 600 && !s.Store.Ended(); i++ {
		_, panels = s.Step(1.0/60, vp)
	}
	if !s.Store.Ended() {
		t.Fatal("journey did not end at the end of the path")
	}
	if !panels.Outro {
		t.Error("outro panel should show once ended")
	}

	// frozen
	frozen := s.Scroll.Offset()
	s.Scroll.Publish(0)
	s.Step(1.0/60, vp)
	if s.Scroll.Offset() != frozen {
		t.Error("scroll moved after the journey ended")
	}
}

func TestApplyInput(t *testing.T) {
	s, err := New(scene.Default(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Overlay.SetProgress(overlay.Loaded)

	// wheel before explore is ignored
	s.Apply(Input{Wheel: 3}, 720)
	if s.Scroll.Target() != 0 {
		t.Fatalf("target = %v before explore", s.Scroll.Target())
	}

	s.Apply(Input{Explore: true}, 720)
	if !s.Store.Playing() {
		t.Fatal("explore input did not begin the journey")
	}

	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{"wheel", Input{Wheel: 2}, 200},
		{"keys", Input{Pixels: 50}, 250},
		{"back", Input{Wheel: -1, Pixels: -50}, 100},
		{"none", Input{}, 100},
	}
	span := 720 * (s.Scroll.Pages() - 1)
	for _, tt := range tests {
		s.Apply(tt.in, 720)
		if got := s.Scroll.Target() * span; math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s: scrolled %.2fpx, want %.2f", tt.name, got, tt.want)
		}
	}
}
