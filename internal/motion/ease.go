package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// clampRate keeps an easing factor inside [0,1]. NaN and negative rates become 0,
// large frame deltas snap to the target instead of overshooting.
func clampRate(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func lerp(a, b, r float64) float64 {
	r = clampRate(r)
	if r == 0 {
		return a
	}
	return a + (b-a)*r
}

func lerpVec(a, b mgl64.Vec3, r float64) mgl64.Vec3 {
	r = clampRate(r)
	if r == 0 {
		return a
	}
	return a.Add(b.Sub(a).Mul(r))
}

// slerp takes the short arc between a and b.
func slerp(a, b mgl64.Quat, r float64) mgl64.Quat {
	r = clampRate(r)
	if r == 0 {
		return a
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, r)
}

// safeNormalize returns the zero vector for zero-length input.
func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lookRotation builds the orientation whose +Z axis points along dir, keeping
// world up. Zero dir falls back to +Z.
func lookRotation(dir mgl64.Vec3) mgl64.Quat {
	up := mgl64.Vec3{0, 1, 0}

	z := safeNormalize(dir)
	if z.Len() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}

	x := up.Cross(z)
	if x.Len() == 0 {
		// dir parallel to up
		if math.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	m := mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
	return mgl64.Mat4ToQuat(m).Normalize()
}

// eulerXYZ decomposes q into intrinsic X, Y, Z angles.
func eulerXYZ(q mgl64.Quat) (x, y, z float64) {
	m := q.Normalize().Mat4()
	m11, m12, m13 := m[0], m[4], m[8]
	m22, m23 := m[5], m[9]
	m32, m33 := m[6], m[10]

	y = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m23, m33)
		z = math.Atan2(-m12, m11)
	} else {
		x = math.Atan2(m32, m22)
		z = 0
	}
	return x, y, z
}

// quatFromEulerXYZ is the inverse of eulerXYZ.
func quatFromEulerXYZ(x, y, z float64) mgl64.Quat {
	c1, s1 := math.Cos(x/2), math.Sin(x/2)
	c2, s2 := math.Cos(y/2), math.Sin(y/2)
	c3, s3 := math.Cos(z/2), math.Sin(z/2)

	return mgl64.Quat{
		W: c1*c2*c3 - s1*s2*s3,
		V: mgl64.Vec3{
			s1*c2*c3 + c1*s2*s3,
			c1*s2*c3 - s1*c2*s3,
			c1*c2*s3 + s1*s2*c3,
		},
	}
}

// rotateY rotates v around the world Y axis by angle radians.
func rotateY(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return mgl64.Vec3{
		v[0]*c + v[2]*s,
		v[1],
		-v[0]*s + v[2]*c,
	}
}
