package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"go.uber.org/zap"
)

// FallDeathSystem recomputes the Dead flag from height every frame. An agent
// pushed back up above the arena floor comes back to life.
type FallDeathSystem struct {
	deps *Deps
}

func NewFallDeathSystem(deps *Deps) *FallDeathSystem {
	return &FallDeathSystem{deps: deps}
}

func (s *FallDeathSystem) Phase() coresys.Phase { return coresys.PhaseDeath }

func (s *FallDeathSystem) Update(_ time.Duration) {
	ws := s.deps.World
	floor := ws.Bounds.HalfSize.Y()
	ws.EachAgent(func(agent ecs.EntityID, _ *component.Hunger) {
		pos, ok := ws.Phys.Position(agent)
		if !ok {
			return
		}
		dead := ws.Deads.Has(agent)
		switch {
		case pos.Y() < floor && !dead:
			ws.Deads.Set(agent, &component.Dead{})
			event.Emit(ws.Bus, event.AgentDied{Agent: agent})
			s.deps.Log.Info("agent fell", zap.Stringer("agent", agent), zap.Float64("y", pos.Y()))
		case pos.Y() >= floor && dead:
			ws.Deads.Remove(agent)
			event.Emit(ws.Bus, event.AgentRevived{Agent: agent})
			s.deps.Log.Info("agent saved", zap.Stringer("agent", agent))
		}
	})
}
