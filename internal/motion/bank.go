package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxBankDegrees caps the airplane roll either way.
	MaxBankDegrees = 35.0
	// BankGain is applied twice to the raw angle before clamping (x5.76 total).
	BankGain = 2.4
)

// BankAngle returns the airplane roll in degrees for a path tangent, seen from a
// rig whose +Z axis points along lookDir. The result is within ±MaxBankDegrees.
func BankAngle(tangent, lookDir mgl64.Vec3) float64 {
	yaw := 0.0
	if d := safeNormalize(lookDir); d.Len() != 0 {
		yaw = math.Asin(mgl64.Clamp(d.X(), -1, 1))
	}

	local := rotateY(tangent, -yaw)

	angle := math.Atan2(-local.Z(), local.X())
	angle = -math.Pi/2 + angle

	deg := angle * 180 / math.Pi
	deg *= BankGain
	deg *= BankGain

	if math.IsNaN(deg) {
		return 0
	}
	if deg < 0 {
		deg = math.Max(deg, -MaxBankDegrees)
	}
	if deg > 0 {
		deg = math.Min(deg, MaxBankDegrees)
	}
	return deg
}
