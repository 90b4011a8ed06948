package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

// AssignGoal replaces whatever goal the agent had with a new one of age 0.
// target may be zero for a plain destination.
func (s *State) AssignGoal(agent ecs.EntityID, dest mgl64.Vec3, target ecs.EntityID, cause event.GoalCause) {
	if !s.IsAgent(agent) {
		return
	}
	s.Goals.Set(agent, &component.Goal{Destination: dest, Target: target})
	event.Emit(s.Bus, event.GoalAssigned{Agent: agent, Destination: dest, Target: target, Cause: cause})
	s.log.Debug("goal assigned",
		zap.Stringer("agent", agent),
		zap.Stringer("cause", cause),
		zap.Stringer("target", target),
		zap.Float64("x", dest.X()), zap.Float64("y", dest.Y()), zap.Float64("z", dest.Z()))
}

// ClearGoal drops destination, target and age together. Reports whether the
// agent had a goal.
func (s *State) ClearGoal(agent ecs.EntityID) bool {
	if !s.Goals.Has(agent) {
		return false
	}
	s.Goals.Remove(agent)
	return true
}

// Goal returns the agent's active goal.
func (s *State) Goal(agent ecs.EntityID) (*component.Goal, bool) {
	return s.Goals.Get(agent)
}

// Pick puts the agent under pointer control and clears its goal. Refuses
// when another agent is already picked.
func (s *State) Pick(agent ecs.EntityID) bool {
	if !s.IsAgent(agent) || s.Picks.Has(agent) {
		return false
	}
	if s.Picks.Len() > 0 {
		s.log.Error("refusing second picked agent",
			zap.Stringer("agent", agent), zap.Stringer("picked", s.Picks.IDs()[0]))
		return false
	}
	s.Picks.Set(agent, &component.Picked{})
	s.ClearGoal(agent)
	event.Emit(s.Bus, event.AgentPicked{Agent: agent})
	return true
}

// Unpick returns the agent to autonomous control.
func (s *State) Unpick(agent ecs.EntityID) {
	if !s.Picks.Has(agent) {
		return
	}
	s.Picks.Remove(agent)
	event.Emit(s.Bus, event.AgentReleased{Agent: agent})
}

// PickedAgent returns the agent under pointer control, if any.
func (s *State) PickedAgent() (ecs.EntityID, bool) {
	id, _, ok := ecs.First(s.Picks, func(id ecs.EntityID, _ *component.Picked) bool {
		return s.Alive(id)
	})
	return id, ok
}

// StartCarry records that agent holds target through joint.
func (s *State) StartCarry(agent, target ecs.EntityID, joint physics.JointID) {
	s.Carryings.Set(agent, &component.Carrying{Target: target, Joint: joint})
	event.Emit(s.Bus, event.PickedUp{Agent: agent, Target: target})
}

// ReleaseCarry destroys the agent's joint and drops its Carrying component
// in one step. Reports whether anything was released.
func (s *State) ReleaseCarry(agent ecs.EntityID) bool {
	c, ok := s.Carryings.Get(agent)
	if !ok {
		return false
	}
	s.Phys.DestroyJoint(c.Joint)
	s.Carryings.Remove(agent)
	event.Emit(s.Bus, event.Dropped{Agent: agent, Target: c.Target})
	return true
}
