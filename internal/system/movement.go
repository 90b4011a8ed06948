package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/mathx"
	"go.uber.org/zap"
)

// MovementSystem moves agents towards their goal and handles arrival.
// Agents with an interaction target never "arrive": they keep pushing until
// the interaction resolver or abandonment ends the goal.
type MovementSystem struct {
	deps *Deps
}

func NewMovementSystem(deps *Deps) *MovementSystem {
	return &MovementSystem{deps: deps}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	ws := s.deps.World
	sim := s.deps.Sim
	secs := dt.Seconds()

	ws.Goals.Each(func(agent ecs.EntityID, g *component.Goal) {
		if ws.IsPicked(agent) || !ws.IsAgent(agent) {
			return
		}
		pos, ok := ws.Phys.Position(agent)
		if !ok {
			return
		}

		dir := mathx.Horizontal(g.Destination.Sub(pos))
		if dir.Len() > sim.ArrivalRadius || g.HasTarget() {
			step := mathx.NormalizeOrZero(dir).Mul(secs)
			v, _ := ws.Phys.LinearVelocity(agent)
			ws.Phys.SetLinearVelocity(agent, mgl64.Vec3{step.X() * sim.MoveSpeed, v.Y(), step.Z() * sim.MoveSpeed})
			s.turn(agent, step)
			return
		}

		ws.Phys.SetLinearVelocity(agent, zero)
		ws.ClearGoal(agent)
		event.Emit(ws.Bus, event.GoalArrived{Agent: agent})
		if ws.ReleaseCarry(agent) {
			s.deps.Log.Debug("agent dropped its load on arrival", zap.Stringer("agent", agent))
		}
	})
}

// turn yaws the agent towards its heading. Local +Z is the agent's forward.
func (s *MovementSystem) turn(agent ecs.EntityID, heading mgl64.Vec3) {
	ws := s.deps.World
	rot, ok := ws.Phys.Rotation(agent)
	if !ok {
		return
	}
	forward := mathx.NormalizeOrZero(rot.Rotate(mgl64.Vec3{0, 0, 1}))
	target := mathx.NormalizeOrZero(heading)
	if forward.Len() == 0 || target.Len() == 0 {
		return
	}
	ws.Phys.SetAngularVelocity(agent, TurnVelocity(forward, target, s.deps.Sim.TurnSpeed, s.deps.Sim.TurnDeadZone))
}

// TurnVelocity is the angular velocity rotating unit vector forward onto
// unit vector target: axis forward×target scaled by the angle between them,
// or zero inside the dead zone. Opposite vectors turn about +Y.
func TurnVelocity(forward, target mgl64.Vec3, speed, deadZone float64) mgl64.Vec3 {
	angle := mathx.AngleBetween(forward, target)
	if angle <= deadZone {
		return zero
	}
	axis := mathx.NormalizeOrZero(forward.Cross(target))
	if axis.Len() == 0 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return axis.Mul(angle * speed)
}
