package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
)

// WanderSystem gives idle agents a random destination on the ground plane,
// up to twice the arena half-size on each axis.
type WanderSystem struct {
	deps *Deps
}

func NewWanderSystem(deps *Deps) *WanderSystem {
	return &WanderSystem{deps: deps}
}

func (s *WanderSystem) Phase() coresys.Phase { return coresys.PhaseWander }

func (s *WanderSystem) Update(_ time.Duration) {
	ws := s.deps.World
	span := ws.Bounds.HalfSize.Mul(2)

	ws.EachAgent(func(agent ecs.EntityID, _ *component.Hunger) {
		if ws.Goals.Has(agent) || ws.IsPicked(agent) {
			return
		}
		dest := mgl64.Vec3{s.uniform(span.X()), 0, s.uniform(span.Z())}
		ws.AssignGoal(agent, dest, 0, event.CauseWander)
	})
}

// uniform samples [-r, r).
func (s *WanderSystem) uniform(r float64) float64 {
	return -r + s.deps.Rand.Float64()*2*r
}
