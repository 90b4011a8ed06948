// Package mathx holds the few vector helpers mgl64 does not provide.
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is (nearly) zero.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Horizontal drops the Y component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// PlanarDistance is the distance between a and b in the XZ plane.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return Horizontal(b.Sub(a)).Len()
}

// AngleBetween returns the unsigned angle between a and b in radians.
// Zero vectors yield 0.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < 1e-12 || lb < 1e-12 {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	return math.Acos(mgl64.Clamp(c, -1, 1))
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
