package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"go.uber.org/zap"
)

// GoalTimerSystem ages every active goal by the frame delta.
type GoalTimerSystem struct {
	deps *Deps
}

func NewGoalTimerSystem(deps *Deps) *GoalTimerSystem {
	return &GoalTimerSystem{deps: deps}
}

func (s *GoalTimerSystem) Phase() coresys.Phase { return coresys.PhaseGoalTimer }

func (s *GoalTimerSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	s.deps.World.Goals.Each(func(_ ecs.EntityID, g *component.Goal) {
		g.Age += secs
	})
}

// AbandonSystem drops goals that have been pursued for too long without
// result. Picked agents are exempt.
type AbandonSystem struct {
	deps *Deps
}

func NewAbandonSystem(deps *Deps) *AbandonSystem {
	return &AbandonSystem{deps: deps}
}

func (s *AbandonSystem) Phase() coresys.Phase { return coresys.PhaseAbandon }

func (s *AbandonSystem) Update(_ time.Duration) {
	ws := s.deps.World
	limit := s.deps.Sim.AbandonAfter.Seconds()
	ws.Goals.Each(func(agent ecs.EntityID, g *component.Goal) {
		if g.Age < limit || ws.IsPicked(agent) {
			return
		}
		age := g.Age
		ws.ClearGoal(agent)
		event.Emit(ws.Bus, event.GoalAbandoned{Agent: agent, Age: age})
		s.deps.Log.Debug("goal abandoned", zap.Stringer("agent", agent), zap.Float64("age", age))
	})
}
