package director

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/skyjourney/internal/curve"
	"github.com/ivlev/skyjourney/internal/waypoint"
)

func straightPath(t *testing.T) *curve.CatmullRom {
	t.Helper()
	c, err := curve.New([]mgl64.Vec3{{0, 0, 0}, {0, 0, -1000}}, curve.DefaultTension)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDirector(t *testing.T) {
	director := NewDirector()

	// Registered out of path order on purpose
	reg := waypoint.NewRegistry([]waypoint.Waypoint{
		{Position: mgl64.Vec3{2, 0, -750}, Title: "late"},
		{Position: mgl64.Vec3{-2, 0, -250}},
	})

	script, err := director.GenerateScript(straightPath(t), reg, 40.0)
	if err != nil {
		t.Fatalf("GenerateScript failed: %v", err)
	}

	if script.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", script.Version)
	}
	if script.Begin != director.Intro {
		t.Errorf("Expected begin %.1f, got %.1f", director.Intro, script.Begin)
	}

	// start + begin + 2 holds of 2 keyframes + finish
	if len(script.Keyframes) != 7 {
		t.Fatalf("Expected 7 keyframes, got %d", len(script.Keyframes))
	}

	if err := script.Validate(); err != nil {
		t.Errorf("generated script is invalid: %v", err)
	}

	holds := script.Keyframes[2:6]
	if holds[0].Focus != "waypoint_2" || math.Abs(holds[0].Offset-0.25) > 1e-9 {
		t.Errorf("first hold = %+v, want waypoint_2 at 0.25", holds[0])
	}
	if holds[2].Focus != "late" || math.Abs(holds[2].Offset-0.75) > 1e-9 {
		t.Errorf("second hold = %+v, want late at 0.75", holds[2])
	}
	if holds[1].Time-holds[0].Time != director.MaxDwell {
		t.Errorf("dwell = %.2f, want clamped to %.2f", holds[1].Time-holds[0].Time, director.MaxDwell)
	}

	last := script.Keyframes[len(script.Keyframes)-1]
	if last.Offset != 1 || last.Focus != "finish" {
		t.Errorf("last keyframe = %+v", last)
	}
	if math.Abs(script.Duration-40.0) > 1e-9 {
		t.Errorf("Expected duration 40, got %f", script.Duration)
	}

	for i, kf := range script.Keyframes {
		t.Logf("Keyframe %d: time=%.2fs, focus=%s, offset=%.3f", i, kf.Time, kf.Focus, kf.Offset)
	}
}

func TestDirectorNoWaypoints(t *testing.T) {
	_, err := NewDirector().GenerateScript(straightPath(t), waypoint.NewRegistry(nil), 30)
	if !errors.Is(err, ErrNoWaypoints) {
		t.Errorf("expected ErrNoWaypoints, got %v", err)
	}
}

func TestOffsetAt(t *testing.T) {
	keyframes := []Keyframe{
		{Time: 0.0, Offset: 0},
		{Time: 2.0, Offset: 0.5},
		{Time: 4.0, Offset: 0.5},
		{Time: 6.0, Offset: 1.0},
	}

	tests := []struct {
		time float64
		want float64
	}{
		{-1.0, 0},
		{0.0, 0},
		{1.0, 0.25}, // midpoint of an eased segment
		{2.0, 0.5},
		{3.0, 0.5}, // hold
		{5.0, 0.75},
		{6.0, 1.0},
		{9.0, 1.0},
	}

	for _, tt := range tests {
		if got := OffsetAt(keyframes, tt.time); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At time %.1f: expected offset %.3f, got %.3f", tt.time, tt.want, got)
		}
	}

	if got := OffsetAt(nil, 3); got != 0 {
		t.Errorf("empty keyframes should give 0, got %f", got)
	}
}

func TestOffsetAtIsMonotonic(t *testing.T) {
	script, err := NewDirector().GenerateScript(straightPath(t), waypoint.NewRegistry([]waypoint.Waypoint{
		{Position: mgl64.Vec3{0, 0, -500}},
	}), 30)
	if err != nil {
		t.Fatal(err)
	}

	prev := 0.0
	for ts := 0.0; ts <= script.Duration; ts += 1.0 / 30 {
		got := OffsetAt(script.Keyframes, ts)
		if got < prev-1e-12 {
			t.Fatalf("offset went back at %.2fs: %f < %f", ts, got, prev)
		}
		prev = got
	}
}

func TestFocus(t *testing.T) {
	keyframes := []Keyframe{{Time: 0, Focus: "start"}, {Time: 1, Focus: "Welcome"}, {Time: 3, Focus: "finish"}}
	if got := Focus(keyframes, 2); got != "Welcome" {
		t.Errorf("Focus = %q", got)
	}
	if got := Focus(keyframes, 5); got != "finish" {
		t.Errorf("Focus = %q", got)
	}
}

func TestScriptWriteRead(t *testing.T) {
	script := &Script{
		Version:  "1.0",
		Scene:    "scene.yaml",
		Begin:    1.0,
		Duration: 5.0,
		Keyframes: []Keyframe{
			{Time: 0.0, Focus: "start", Offset: 0},
			{Time: 2.5, Focus: "Welcome", Offset: 0.14},
		},
	}

	tmpFile := filepath.Join(t.TempDir(), "script.yaml")
	if err := WriteScript(script, tmpFile); err != nil {
		t.Fatalf("WriteScript failed: %v", err)
	}

	readScript, err := ReadScript(tmpFile)
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}

	if readScript.Version != script.Version || readScript.Scene != script.Scene {
		t.Errorf("header mismatch: %+v", readScript)
	}
	if len(readScript.Keyframes) != len(script.Keyframes) {
		t.Errorf("Keyframe count mismatch: expected %d, got %d", len(script.Keyframes), len(readScript.Keyframes))
	}
}

func TestReadScriptRejectsBadKeyframes(t *testing.T) {
	tests := []struct {
		name      string
		keyframes []Keyframe
	}{
		{"empty", nil},
		{"offset", []Keyframe{{Time: 0, Offset: 1.5}}},
		{"order", []Keyframe{{Time: 2}, {Time: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := WriteScript(&Script{Version: "1.0", Keyframes: tt.keyframes}, path); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadScript(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFindLatestScript(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "script_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "script_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "script_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	latest, err := FindLatestScript(dir)
	if err != nil {
		t.Fatalf("FindLatestScript failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}

	if _, err := FindLatestScript(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
}

func TestGenerateScriptPath(t *testing.T) {
	path := GenerateScriptPath()
	if filepath.Dir(path) != ScriptsDir {
		t.Errorf("Path should be in %s: %s", ScriptsDir, path)
	}
	if filepath.Ext(path) != ".yaml" {
		t.Errorf("Path should be yaml: %s", path)
	}
}
