package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/physics"
)

// Physics is the narrow view of the physics collaborator the core uses.
// All reads reflect the state resolved by the last physics step.
// *physics.World implements it.
type Physics interface {
	Position(id ecs.EntityID) (mgl64.Vec3, bool)
	Rotation(id ecs.EntityID) (mgl64.Quat, bool)
	LinearVelocity(id ecs.EntityID) (mgl64.Vec3, bool)
	SetLinearVelocity(id ecs.EntityID, v mgl64.Vec3)
	SetAngularVelocity(id ecs.EntityID, v mgl64.Vec3)
	BodyType(id ecs.EntityID) (physics.BodyType, bool)
	SetBodyType(id ecs.EntityID, t physics.BodyType)
	CastRay(origin, dir mgl64.Vec3, maxDist float64) (physics.RayHit, bool)
	Collision(a, b ecs.EntityID) (physics.Collision, bool)
	CreateDistanceJoint(def physics.JointDef) physics.JointID
	DestroyJoint(id physics.JointID)
	Joint(id physics.JointID) (physics.DistanceJoint, bool)
	JointAlive(id physics.JointID) bool
	AddBody(id ecs.EntityID, def physics.BodyDef) *physics.Body
	RemoveBody(id ecs.EntityID)
	Step(dt float64)
}

var _ Physics = (*physics.World)(nil)
