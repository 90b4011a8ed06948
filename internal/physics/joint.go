package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// JointID identifies a joint. Zero is never a live joint.
type JointID uint64

func (id JointID) IsZero() bool { return id == 0 }

// DistanceJoint keeps two anchor points at their initial separation.
// Compliance softens the constraint: each step removes 1/(1+Compliance) of
// the length error, so 0 is rigid.
type DistanceJoint struct {
	ID         JointID
	Entity1    ecs.EntityID
	Entity2    ecs.EntityID
	Anchor1    mgl64.Vec3 // in Entity1's frame
	Anchor2    mgl64.Vec3 // in Entity2's frame
	Compliance float64
	RestLength float64
}

// JointDef describes a distance joint between two bodies.
type JointDef struct {
	Entity1    ecs.EntityID
	Entity2    ecs.EntityID
	Anchor1    mgl64.Vec3
	Anchor2    mgl64.Vec3
	Compliance float64
}

// CreateDistanceJoint links two existing bodies. The rest length is the
// current distance between the anchors. Returns 0 when a body is missing.
func (w *World) CreateDistanceJoint(def JointDef) JointID {
	b1, ok1 := w.index[def.Entity1]
	b2, ok2 := w.index[def.Entity2]
	if !ok1 || !ok2 {
		return 0
	}
	w.nextJoint++
	j := &DistanceJoint{
		ID:         w.nextJoint,
		Entity1:    def.Entity1,
		Entity2:    def.Entity2,
		Anchor1:    def.Anchor1,
		Anchor2:    def.Anchor2,
		Compliance: def.Compliance,
		RestLength: b2.toWorld(def.Anchor2).Sub(b1.toWorld(def.Anchor1)).Len(),
	}
	w.joints[j.ID] = j
	w.jointSeq = append(w.jointSeq, j.ID)
	return j.ID
}

// DestroyJoint removes a joint; unknown IDs are ignored.
func (w *World) DestroyJoint(id JointID) {
	if _, ok := w.joints[id]; !ok {
		return
	}
	delete(w.joints, id)
	for i, jid := range w.jointSeq {
		if jid == id {
			w.jointSeq = append(w.jointSeq[:i], w.jointSeq[i+1:]...)
			break
		}
	}
}

// Joint returns a copy of the joint.
func (w *World) Joint(id JointID) (DistanceJoint, bool) {
	j, ok := w.joints[id]
	if !ok {
		return DistanceJoint{}, false
	}
	return *j, true
}

// JointAlive reports whether the joint exists.
func (w *World) JointAlive(id JointID) bool {
	_, ok := w.joints[id]
	return ok
}

// JointCount returns the number of live joints.
func (w *World) JointCount() int { return len(w.joints) }

// JointsOf lists the joints attached to id, in creation order.
func (w *World) JointsOf(id ecs.EntityID) []JointID {
	var out []JointID
	for _, jid := range w.jointSeq {
		j := w.joints[jid]
		if j.Entity1 == id || j.Entity2 == id {
			out = append(out, jid)
		}
	}
	return out
}

func (w *World) solveJoints() {
	for _, jid := range w.jointSeq {
		j := w.joints[jid]
		b1, ok1 := w.index[j.Entity1]
		b2, ok2 := w.index[j.Entity2]
		if !ok1 || !ok2 {
			continue
		}
		w1, w2 := b1.invMass(), b2.invMass()
		if w1+w2 == 0 {
			continue
		}
		p1 := b1.toWorld(j.Anchor1)
		p2 := b2.toWorld(j.Anchor2)
		d := p2.Sub(p1)
		l := d.Len()
		if l < 1e-9 {
			continue
		}
		n := d.Mul(1 / l)
		c := (l - j.RestLength) / (1 + j.Compliance)
		// Positive c pulls the bodies together.
		b1.Position = b1.Position.Add(n.Mul(c * w1 / (w1 + w2)))
		b2.Position = b2.Position.Sub(n.Mul(c * w2 / (w1 + w2)))
	}
}
