package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/mathx"
)

// DragSystem steers the picked agent towards the drag surface point under
// the pointer while the select button is held. Fixed cadence.
type DragSystem struct {
	deps *Deps
}

func NewDragSystem(deps *Deps) *DragSystem {
	return &DragSystem{deps: deps}
}

func (s *DragSystem) Phase() coresys.Phase { return coresys.PhaseDrag }

func (s *DragSystem) Update(dt time.Duration) {
	ws := s.deps.World
	agent, ok := ws.PickedAgent()
	if !ok || !s.deps.Pointer.Snap.SelectHeld {
		return
	}
	hit, ok := s.deps.Pointer.Cast(ws.Phys, s.deps.Sim.RayMaxDistance)
	if !ok {
		return
	}
	if caps, ok := ws.CapsOf(hit.Entity); !ok || !caps.DragSurface {
		return
	}
	pos, ok := ws.Phys.Position(agent)
	if !ok {
		return
	}

	ws.Phys.SetLinearVelocity(agent, DragVelocity(hit.Point.Sub(pos), dt.Seconds(), s.deps.Sim.DragSpeed, s.deps.Sim.DragDeadZone))
}

// DragVelocity is the velocity that pulls an agent along offset (hit point
// minus agent position). Only the horizontal part of offset counts; inside the
// dead zone the agent stops.
func DragVelocity(offset mgl64.Vec3, dt, speed, deadZone float64) mgl64.Vec3 {
	h := mathx.Horizontal(offset)
	if h.Len() <= deadZone {
		return zero
	}
	return h.Normalize().Mul(dt * speed)
}
