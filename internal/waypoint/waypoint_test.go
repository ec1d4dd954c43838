package waypoint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestInfluence(t *testing.T) {
	reg := NewRegistry([]Waypoint{
		{Position: mgl64.Vec3{0, 0, -250}, RailBias: -1, Title: "Welcome"},
		{Position: mgl64.Vec3{0, 0, -500}, RailBias: 1.5},
	})

	tests := []struct {
		name         string
		pos          mgl64.Vec3
		wantInRange  bool
		wantTarget   float64
		wantFriction float64
		wantIndex    int
	}{
		{"out of range", mgl64.Vec3{0, 0, 0}, false, 0, 1, -1},
		{"half distance", mgl64.Vec3{0, 0, -479}, true, 0.75, 0.5, 1},
		{"on top", mgl64.Vec3{0, 0, -250}, true, -1, MinFriction, 0},
		{"near floor", mgl64.Vec3{0, 0, -252.1}, true, -0.95, MinFriction, 0},
		{"edge excluded", mgl64.Vec3{0, 0, -208}, false, 0, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Influence(tt.pos)
			if got.InRange != tt.wantInRange {
				t.Fatalf("InRange = %v, want %v", got.InRange, tt.wantInRange)
			}
			if math.Abs(got.Target-tt.wantTarget) > 1e-9 {
				t.Errorf("Target = %f, want %f", got.Target, tt.wantTarget)
			}
			if math.Abs(got.Friction-tt.wantFriction) > 1e-9 {
				t.Errorf("Friction = %f, want %f", got.Friction, tt.wantFriction)
			}
			if got.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", got.Index, tt.wantIndex)
			}
		})
	}
}

func TestInfluenceLastInRangeWins(t *testing.T) {
	// both waypoints are in range; the closer one comes first and must lose
	reg := NewRegistry([]Waypoint{
		{Position: mgl64.Vec3{0, 0, -1}, RailBias: 2},
		{Position: mgl64.Vec3{0, 0, -30}, RailBias: -1},
	})

	got := reg.Influence(mgl64.Vec3{0, 0, 0})
	if got.Index != 1 {
		t.Fatalf("expected the second waypoint to win, got index %d", got.Index)
	}
	wantTarget := (1 - 30.0/InfluenceDistance) * -1
	if math.Abs(got.Target-wantTarget) > 1e-9 {
		t.Errorf("Target = %f, want %f", got.Target, wantTarget)
	}
}

func TestRegistryIsCopied(t *testing.T) {
	wps := []Waypoint{{Title: "a"}}
	reg := NewRegistry(wps)
	wps[0].Title = "b"

	if reg.At(0).Title != "a" {
		t.Errorf("registry must not alias the input slice")
	}
	all := reg.All()
	all[0].Title = "c"
	if reg.At(0).Title != "a" {
		t.Errorf("All must return a copy")
	}
}
