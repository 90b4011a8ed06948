package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// ContactPoint is one touching point, expressed in each body's local frame.
type ContactPoint struct {
	LocalPoint1 mgl64.Vec3
	LocalPoint2 mgl64.Vec3
	Penetration float64
}

// Manifold groups contact points sharing a normal (pointing from body 1 to 2).
type Manifold struct {
	Normal mgl64.Vec3
	Points []ContactPoint
}

// Collision is the contact data of one touching pair after the last step.
type Collision struct {
	Entity1   ecs.EntityID
	Entity2   ecs.EntityID
	Manifolds []Manifold
}

type pairKey struct{ a, b ecs.EntityID }

func keyOf(a, b ecs.EntityID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Collision returns the contact data between a and b from the last step.
// Entity1/Entity2 follow body order, not argument order.
func (w *World) Collision(a, b ecs.EntityID) (Collision, bool) {
	c, ok := w.collisions[keyOf(a, b)]
	if !ok {
		return Collision{}, false
	}
	return *c, true
}

// CollisionCount returns the number of touching pairs.
func (w *World) CollisionCount() int { return len(w.collisions) }

// overlap returns the per-axis penetration of two boxes grown by margin.
// Any component <= 0 means the boxes are apart.
func overlap(b1, b2 *Body, margin float64) mgl64.Vec3 {
	min1, max1 := b1.min(), b1.max()
	min2, max2 := b2.min(), b2.max()
	var pen mgl64.Vec3
	for i := 0; i < 3; i++ {
		pen[i] = math.Min(max1[i], max2[i]) - math.Max(min1[i], min2[i]) + margin
	}
	return pen
}

func touching(pen mgl64.Vec3) bool {
	return pen[0] > 0 && pen[1] > 0 && pen[2] > 0
}

// minAxis returns the axis of least penetration.
func minAxis(pen mgl64.Vec3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if pen[i] < pen[axis] {
			axis = i
		}
	}
	return axis
}

func (w *World) collectContacts() {
	clear(w.collisions)
	m := w.cfg.ContactMargin
	for i, b1 := range w.bodies {
		for _, b2 := range w.bodies[i+1:] {
			if b1.Type == Static && b2.Type == Static {
				continue
			}
			pen := overlap(b1, b2, m)
			if !touching(pen) {
				continue
			}
			// The contact point is the centre of the intersection box.
			var centre mgl64.Vec3
			min1, max1 := b1.min(), b1.max()
			min2, max2 := b2.min(), b2.max()
			for k := 0; k < 3; k++ {
				lo := math.Max(min1[k], min2[k])
				hi := math.Min(max1[k], max2[k])
				centre[k] = (lo + hi) / 2
			}
			axis := minAxis(pen)
			var normal mgl64.Vec3
			normal[axis] = 1
			if b2.Position[axis] < b1.Position[axis] {
				normal[axis] = -1
			}
			w.collisions[keyOf(b1.Entity, b2.Entity)] = &Collision{
				Entity1: b1.Entity,
				Entity2: b2.Entity,
				Manifolds: []Manifold{{
					Normal: normal,
					Points: []ContactPoint{{
						LocalPoint1: b1.toLocal(centre),
						LocalPoint2: b2.toLocal(centre),
						Penetration: pen[axis] - m,
					}},
				}},
			}
		}
	}
}
