package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/scripting"
	"go.uber.org/zap"
)

// HungerSystem drains hunger every fixed tick and sends starving agents to
// the food store. The override is re-applied every tick while an agent
// starves, so no other goal survives it.
type HungerSystem struct {
	deps   *Deps
	warned bool // food store count warning, once per round
}

func NewHungerSystem(deps *Deps) *HungerSystem {
	return &HungerSystem{deps: deps}
}

func (s *HungerSystem) Phase() coresys.Phase { return coresys.PhaseHunger }

// ResetRound re-arms the once-per-round warning.
func (s *HungerSystem) ResetRound() { s.warned = false }

func (s *HungerSystem) Update(dt time.Duration) {
	ws := s.deps.World
	food, foodCount := ws.FoodStore()

	ws.EachAgent(func(agent ecs.EntityID, h *component.Hunger) {
		ctx := scripting.HungerContext{
			Dt:       dt.Seconds(),
			Carrying: ws.Carryings.Has(agent),
			Rate:     s.deps.Sim.HungerRate,
			Penalty:  s.deps.Sim.CarryPenalty,
			Hunger:   h.Percentage,
		}
		h.Percentage = mgl64.Clamp(h.Percentage-s.drain(ctx), 0, 100)
		if h.Percentage > 0 {
			return
		}

		if ws.IsPicked(agent) {
			return
		}
		if foodCount != 1 {
			if !s.warned {
				s.deps.Log.Warn("starving agents ignored: need exactly one food store",
					zap.Int("food_stores", foodCount))
				s.warned = true
			}
			return
		}
		s.sendToFood(agent, food)
	})
}

// drain asks the hook for this tick's drain. NaN falls back to the stock
// formula; other out-of-range results are absorbed by the clamp.
func (s *HungerSystem) drain(ctx scripting.HungerContext) float64 {
	if s.deps.Hunger == nil {
		return scripting.DefaultHungerDrain(ctx)
	}
	if d := s.deps.Hunger.CalcHungerDrain(ctx); !math.IsNaN(d) {
		return d
	}
	return scripting.DefaultHungerDrain(ctx)
}

func (s *HungerSystem) sendToFood(agent, food ecs.EntityID) {
	ws := s.deps.World
	pos, ok := ws.Phys.Position(food)
	if !ok {
		return
	}
	// Already heading there: refresh in place rather than re-announce the
	// goal every tick.
	if g, ok := ws.Goal(agent); ok && g.Target == food {
		g.Destination = pos
		g.Age = 0
		return
	}
	ws.AssignGoal(agent, pos, food, event.CauseHunger)
}
