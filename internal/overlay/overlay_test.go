package overlay

import (
	"testing"

	"github.com/ivlev/skyjourney/internal/journey"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		state    journey.State
		want     Panels
	}{
		{"loading", 40, journey.Idle, Panels{Loader: true}},
		{"loaded", 100, journey.Idle, Panels{LoaderFading: true, Intro: true, ExploreActive: true}},
		{"playing", 100, journey.Playing, Panels{}},
		{"ended", 100, journey.Ended, Panels{Outro: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.progress, tt.state); got != tt.want {
				t.Errorf("Compute(%v, %v) = %+v, want %+v", tt.progress, tt.state, got, tt.want)
			}
		})
	}
}

func TestExploreWaitsForAssets(t *testing.T) {
	store := journey.NewStore()
	o, err := New(store, "SKY JOURNEY", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	o.SetProgress(99)
	if o.Explore() {
		t.Fatal("explore must wait for assets")
	}
	if store.State() != journey.Idle {
		t.Fatalf("state = %v", store.State())
	}

	o.SetProgress(150)
	if o.Progress() != Loaded {
		t.Errorf("progress not clamped: %v", o.Progress())
	}
	if !o.Explore() {
		t.Fatal("explore should begin the journey")
	}
	if o.Explore() {
		t.Error("explore is only active before the journey")
	}
	if store.State() != journey.Playing {
		t.Errorf("state = %v, want playing", store.State())
	}
}

func TestQRCode(t *testing.T) {
	o, err := New(journey.NewStore(), "", "https://example.com/portfolio", 128)
	if err != nil {
		t.Fatal(err)
	}
	img := o.QRCode()
	if img == nil {
		t.Fatal("expected a QR image")
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("qr size %v", b)
	}

	plain, _ := New(journey.NewStore(), "", "", 128)
	if plain.QRCode() != nil {
		t.Error("no link should mean no QR code")
	}
}
