package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
)

// DespawnSystem removes anything that fell below the despawn depth.
type DespawnSystem struct {
	deps *Deps
}

func NewDespawnSystem(deps *Deps) *DespawnSystem {
	return &DespawnSystem{deps: deps}
}

func (s *DespawnSystem) Phase() coresys.Phase { return coresys.PhaseDespawn }

func (s *DespawnSystem) Update(_ time.Duration) {
	ws := s.deps.World
	depth := s.deps.Sim.DespawnDepth
	var fallen []ecs.EntityID
	var ys []float64
	ws.Kinds.Each(func(id ecs.EntityID, _ *component.Kind) {
		pos, ok := ws.Phys.Position(id)
		if ok && pos.Y() < depth {
			fallen = append(fallen, id)
			ys = append(ys, pos.Y())
		}
	})
	for i, id := range fallen {
		ws.Despawn(id, ys[i])
	}
}

// CleanupSystem flushes the deferred entity destruction queue at frame end.
type CleanupSystem struct {
	deps *Deps
}

func NewCleanupSystem(deps *Deps) *CleanupSystem {
	return &CleanupSystem{deps: deps}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.deps.World.FlushDestroyed()
}
