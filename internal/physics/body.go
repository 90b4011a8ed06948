// Package physics is a small deterministic rigid-body world: axis-aligned box
// colliders, gravity, contact manifolds, ray casts and distance joints. It is
// the physics collaborator the simulation core talks to through world.Physics.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// BodyType selects whether a body is simulated.
type BodyType uint8

const (
	Static BodyType = iota
	Dynamic
)

func (t BodyType) String() string {
	if t == Dynamic {
		return "dynamic"
	}
	return "static"
}

// Body is one collider. Positions are box centres; collision uses the
// axis-aligned box HalfExtents around Position and ignores Rotation.
type Body struct {
	Entity          ecs.EntityID
	Type            BodyType
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
	HalfExtents     mgl64.Vec3
	Mass            float64
	LockTilt        bool // lock rotation about X and Z

	supported bool // resting on something after the last step
}

// BodyDef describes a body to add.
type BodyDef struct {
	Type        BodyType
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	HalfExtents mgl64.Vec3
	Mass        float64
	LockTilt    bool
}

func (b *Body) invMass() float64 {
	if b.Type != Dynamic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

func (b *Body) min() mgl64.Vec3 { return b.Position.Sub(b.HalfExtents) }
func (b *Body) max() mgl64.Vec3 { return b.Position.Add(b.HalfExtents) }

// toLocal maps a world point into the body's frame.
func (b *Body) toLocal(p mgl64.Vec3) mgl64.Vec3 {
	return b.Rotation.Inverse().Rotate(p.Sub(b.Position))
}

// toWorld maps a body-frame point into world space.
func (b *Body) toWorld(p mgl64.Vec3) mgl64.Vec3 {
	return b.Position.Add(b.Rotation.Rotate(p))
}
