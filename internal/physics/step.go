package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Step advances the world by dt seconds: integrate dynamic bodies, solve
// joints, push overlapping boxes apart, then record contacts for queries made
// before the next step.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b.Type != Dynamic {
			continue
		}
		b.LinearVelocity = b.LinearVelocity.Add(w.cfg.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))
		integrateRotation(b, dt)
		b.supported = false
	}

	w.solveJoints()
	w.resolvePenetrations()

	damp := math.Max(0, 1-w.cfg.GroundDamping*dt)
	for _, b := range w.bodies {
		if b.Type == Dynamic && b.supported {
			b.LinearVelocity[0] *= damp
			b.LinearVelocity[2] *= damp
		}
	}

	w.collectContacts()
}

func integrateRotation(b *Body, dt float64) {
	if b.LockTilt {
		b.AngularVelocity[0] = 0
		b.AngularVelocity[2] = 0
	}
	if b.AngularVelocity.LenSqr() == 0 {
		return
	}
	spin := mgl64.Quat{W: 0, V: b.AngularVelocity}.Mul(b.Rotation).Scale(0.5 * dt)
	b.Rotation = b.Rotation.Add(spin).Normalize()
}

func (w *World) resolvePenetrations() {
	for i, b1 := range w.bodies {
		for _, b2 := range w.bodies[i+1:] {
			w1, w2 := b1.invMass(), b2.invMass()
			if w1+w2 == 0 {
				continue
			}
			pen := overlap(b1, b2, 0)
			if !touching(pen) {
				continue
			}
			axis := minAxis(pen)
			sign := 1.0 // push b2 towards +axis, b1 towards -axis
			if b2.Position[axis] < b1.Position[axis] {
				sign = -1
			}
			depth := pen[axis]
			s1 := depth * w1 / (w1 + w2)
			s2 := depth * w2 / (w1 + w2)
			b1.Position[axis] -= sign * s1
			b2.Position[axis] += sign * s2

			// Kill the approaching part of each velocity along the axis.
			if w1 > 0 && b1.LinearVelocity[axis]*sign > 0 {
				b1.LinearVelocity[axis] = 0
			}
			if w2 > 0 && b2.LinearVelocity[axis]*sign < 0 {
				b2.LinearVelocity[axis] = 0
			}
			if axis == 1 {
				if sign > 0 {
					b2.supported = true
				} else {
					b1.supported = true
				}
			}
		}
	}
}
