package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// RayHit is the nearest surface a ray touched.
type RayHit struct {
	Entity   ecs.EntityID
	Point    mgl64.Vec3
	Distance float64
	Normal   mgl64.Vec3
}

// CastRay returns the nearest body hit along dir (normalized internally)
// within maxDist. A ray starting inside a box hits that box's far side.
// Ties go to the body added first.
func (w *World) CastRay(origin, dir mgl64.Vec3, maxDist float64) (RayHit, bool) {
	l := dir.Len()
	if l < 1e-12 {
		return RayHit{}, false
	}
	dir = dir.Mul(1 / l)

	best := RayHit{Distance: math.Inf(1)}
	found := false
	for _, b := range w.bodies {
		t, normal, ok := raySlab(origin, dir, b.min(), b.max())
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = RayHit{Entity: b.Entity, Distance: t, Normal: normal}
		found = true
	}
	if !found {
		return RayHit{}, false
	}
	best.Point = origin.Add(dir.Mul(best.Distance))
	return best, true
}

// raySlab intersects a ray with an axis-aligned box.
func raySlab(origin, dir, lo, hi mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	enterAxis, exitAxis := -1, -1
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, enterAxis = t1, i
		}
		if t2 < tmax {
			tmax, exitAxis = t2, i
		}
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var normal mgl64.Vec3
	if tmin >= 0 {
		if enterAxis >= 0 {
			normal[enterAxis] = -math.Copysign(1, dir[enterAxis])
		}
		return tmin, normal, true
	}
	if exitAxis >= 0 {
		normal[exitAxis] = math.Copysign(1, dir[exitAxis])
	}
	return tmax, normal, true
}
