package session

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/skyjourney/internal/motion"
	"github.com/ivlev/skyjourney/internal/overlay"
)

// Frame is the JSON form of one step, for hosts that draw the scene themselves.
type Frame struct {
	Ready    bool    `json:"ready"`
	Frame    int     `json:"frame"`
	Offset   float64 `json:"offset"`
	Fov      float64 `json:"fov"`
	Distance float64 `json:"distance"`

	Camera         [3]float64 `json:"camera"`
	CameraRotation [4]float64 `json:"cameraRotation"` // x, y, z, w
	Rail           [3]float64 `json:"rail"`

	Airplane         [3]float64 `json:"airplane"`
	AirplaneRotation [4]float64 `json:"airplaneRotation"`
	Bank             float64    `json:"bank"`

	Opacity    float64  `json:"opacity"`
	Background []string `json:"background"`
	Waypoint   int      `json:"waypoint"`

	State  string         `json:"state"`
	Panels overlay.Panels `json:"panels"`
}

// Encode flattens a step for the wire.
func Encode(out motion.FrameOutputs, panels overlay.Panels, state fmt.Stringer) Frame {
	f := Frame{
		Ready:            out.Ready,
		Frame:            out.Frame,
		Offset:           out.Offset,
		Fov:              out.Lens.Fov,
		Distance:         out.Lens.Distance,
		Camera:           vec(out.CameraPosition),
		CameraRotation:   quat(out.Orientation),
		Rail:             vec(out.Rail),
		Airplane:         vec(out.AirplanePosition),
		AirplaneRotation: quat(out.AirplaneOrientation),
		Bank:             out.BankDegrees,
		Opacity:          out.Opacity,
		Background:       []string{hex(out.ColorA), hex(out.ColorB)},
		Waypoint:         out.Waypoint,
		Panels:           panels,
	}
	if state != nil {
		f.State = state.String()
	}
	return f
}

// StepJSON publishes offset, advances by delta for a width x height viewport
// and returns the frame as JSON.
func (s *Session) StepJSON(offset, delta float64, width, height int) (string, error) {
	s.Scroll.Publish(offset)
	out, panels := s.Step(delta, motion.Viewport{Width: width, Height: height})

	data, err := json.Marshal(Encode(out, panels, s.Store.State()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func vec(v mgl64.Vec3) [3]float64 { return [3]float64(v) }

func quat(q mgl64.Quat) [4]float64 {
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
