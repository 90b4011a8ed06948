package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// Config tunes the simulation.
type Config struct {
	Gravity       mgl64.Vec3
	ContactMargin float64 // boxes closer than this still report a contact
	GroundDamping float64 // per-second horizontal damping for supported bodies
}

func DefaultConfig() Config {
	return Config{
		Gravity:       mgl64.Vec3{0, -9.81, 0},
		ContactMargin: 0.01,
		GroundDamping: 4,
	}
}

// World owns every body and joint. Bodies are kept in insertion order so that
// stepping, ray casts and contact generation are deterministic.
// Accessed only from the simulation goroutine, so there are no locks.
type World struct {
	cfg    Config
	bodies []*Body
	index  map[ecs.EntityID]*Body

	joints    map[JointID]*DistanceJoint
	jointSeq  []JointID
	nextJoint JointID

	collisions map[pairKey]*Collision
}

func NewWorld(cfg Config) *World {
	return &World{
		cfg:        cfg,
		bodies:     make([]*Body, 0, 128),
		index:      make(map[ecs.EntityID]*Body, 128),
		joints:     make(map[JointID]*DistanceJoint, 16),
		collisions: make(map[pairKey]*Collision, 64),
	}
}

// AddBody attaches a collider to entity id, replacing any previous body.
func (w *World) AddBody(id ecs.EntityID, def BodyDef) *Body {
	w.RemoveBody(id)
	rot := def.Rotation
	if rot == (mgl64.Quat{}) {
		rot = mgl64.QuatIdent()
	}
	b := &Body{
		Entity:      id,
		Type:        def.Type,
		Position:    def.Position,
		Rotation:    rot,
		HalfExtents: def.HalfExtents,
		Mass:        def.Mass,
		LockTilt:    def.LockTilt,
	}
	if b.Mass <= 0 {
		b.Mass = 1
	}
	w.bodies = append(w.bodies, b)
	w.index[id] = b
	return b
}

// RemoveBody drops the body of id together with its joints and contacts.
func (w *World) RemoveBody(id ecs.EntityID) {
	b, ok := w.index[id]
	if !ok {
		return
	}
	delete(w.index, id)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for _, jid := range w.JointsOf(id) {
		w.DestroyJoint(jid)
	}
	for k := range w.collisions {
		if k.a == id || k.b == id {
			delete(w.collisions, k)
		}
	}
}

// Body returns the body of id.
func (w *World) Body(id ecs.EntityID) (*Body, bool) {
	b, ok := w.index[id]
	return b, ok
}

// BodyCount returns the number of bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

func (w *World) Position(id ecs.EntityID) (mgl64.Vec3, bool) {
	b, ok := w.index[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.Position, true
}

func (w *World) Rotation(id ecs.EntityID) (mgl64.Quat, bool) {
	b, ok := w.index[id]
	if !ok {
		return mgl64.QuatIdent(), false
	}
	return b.Rotation, true
}

func (w *World) LinearVelocity(id ecs.EntityID) (mgl64.Vec3, bool) {
	b, ok := w.index[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.LinearVelocity, true
}

func (w *World) SetLinearVelocity(id ecs.EntityID, v mgl64.Vec3) {
	if b, ok := w.index[id]; ok {
		b.LinearVelocity = v
	}
}

func (w *World) AngularVelocity(id ecs.EntityID) (mgl64.Vec3, bool) {
	b, ok := w.index[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.AngularVelocity, true
}

func (w *World) SetAngularVelocity(id ecs.EntityID, v mgl64.Vec3) {
	if b, ok := w.index[id]; ok {
		b.AngularVelocity = v
	}
}

func (w *World) BodyType(id ecs.EntityID) (BodyType, bool) {
	b, ok := w.index[id]
	if !ok {
		return Static, false
	}
	return b.Type, true
}

// SetBodyType switches a body between static and dynamic. A body turned
// static loses its velocity.
func (w *World) SetBodyType(id ecs.EntityID, t BodyType) {
	b, ok := w.index[id]
	if !ok {
		return
	}
	b.Type = t
	if t == Static {
		b.LinearVelocity = mgl64.Vec3{}
		b.AngularVelocity = mgl64.Vec3{}
	}
}

// SetPosition teleports a body.
func (w *World) SetPosition(id ecs.EntityID, p mgl64.Vec3) {
	if b, ok := w.index[id]; ok {
		b.Position = p
	}
}

// Clear drops all bodies, joints and contacts.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	clear(w.index)
	clear(w.joints)
	w.jointSeq = w.jointSeq[:0]
	clear(w.collisions)
}
