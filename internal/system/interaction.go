package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

// InteractionSystem resolves interaction goals on contact: carryable targets
// are picked up through a distance joint, food stores refill hunger.
// Both resolvers read the same target list, taken before either runs.
type InteractionSystem struct {
	deps *Deps
}

func NewInteractionSystem(deps *Deps) *InteractionSystem {
	return &InteractionSystem{deps: deps}
}

func (s *InteractionSystem) Phase() coresys.Phase { return coresys.PhaseInteraction }

type interactionGoal struct {
	agent  ecs.EntityID
	target ecs.EntityID
}

func (s *InteractionSystem) Update(_ time.Duration) {
	ws := s.deps.World
	var pending []interactionGoal
	ws.Goals.Each(func(agent ecs.EntityID, g *component.Goal) {
		if g.HasTarget() && !ws.IsPicked(agent) && ws.IsAgent(agent) {
			pending = append(pending, interactionGoal{agent: agent, target: g.Target})
		}
	})

	for _, p := range pending {
		s.pickup(p.agent, p.target)
	}
	// Feeding uses the list taken above, so a carryable store picked up in
	// this pass still feeds even though pickup cleared the goal.
	for _, p := range pending {
		s.feed(p.agent, p.target)
	}
}

// contact returns the first contact point between agent and target, in
// agent-then-target order. A pair touching without contact points counts as
// no contact and is retried on a later frame.
func (s *InteractionSystem) contact(agent, target ecs.EntityID) (agentPoint, targetPoint mgl64.Vec3, ok bool) {
	col, ok := s.deps.World.Phys.Collision(agent, target)
	if !ok || len(col.Manifolds) == 0 || len(col.Manifolds[0].Points) == 0 {
		return agentPoint, targetPoint, false
	}
	cp := col.Manifolds[0].Points[0]
	if col.Entity1 != agent {
		return cp.LocalPoint2, cp.LocalPoint1, true
	}
	return cp.LocalPoint1, cp.LocalPoint2, true
}

// interactable reports whether target is a live non-agent interactable.
func (s *InteractionSystem) interactable(target ecs.EntityID) (component.Caps, bool) {
	ws := s.deps.World
	caps, ok := ws.CapsOf(target)
	if !ok || !caps.Interactable || ws.IsAgent(target) {
		return component.Caps{}, false
	}
	return caps, true
}

func (s *InteractionSystem) pickup(agent, target ecs.EntityID) {
	ws := s.deps.World
	caps, ok := s.interactable(target)
	if !ok || !caps.CanBeCarried || ws.Carryings.Has(agent) {
		return
	}
	agentPoint, targetPoint, ok := s.contact(agent, target)
	if !ok {
		return
	}

	joint := ws.Phys.CreateDistanceJoint(physics.JointDef{
		Entity1:    agent,
		Entity2:    target,
		Anchor1:    agentPoint,
		Anchor2:    targetPoint,
		Compliance: s.deps.Sim.JointCompliance,
	})
	if joint.IsZero() {
		s.deps.Log.Warn("pickup joint not created", zap.Stringer("agent", agent), zap.Stringer("target", target))
		return
	}
	ws.StartCarry(agent, target, joint)
	ws.ClearGoal(agent)
	s.deps.Log.Debug("agent picked up interactable", zap.Stringer("agent", agent), zap.Stringer("target", target))
}

func (s *InteractionSystem) feed(agent, target ecs.EntityID) {
	ws := s.deps.World
	caps, ok := s.interactable(target)
	if !ok || !caps.FoodStore {
		return
	}
	if _, _, ok := s.contact(agent, target); !ok {
		return
	}
	h, ok := ws.Hungers.Get(agent)
	if !ok {
		return
	}
	h.Percentage = 100
	ws.ClearGoal(agent)
	event.Emit(ws.Bus, event.Fed{Agent: agent, Store: target})
	s.deps.Log.Debug("agent ate from food store", zap.Stringer("agent", agent), zap.Stringer("store", target))
}
