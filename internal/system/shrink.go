package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/mathx"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

// ShrinkSystem is the hazard driver: every ShrinkEvery it lets the static
// ground tile farthest from the ship fall. The accumulator resets to zero
// instead of carrying the overshoot.
type ShrinkSystem struct {
	deps    *Deps
	elapsed float64 // seconds
}

func NewShrinkSystem(deps *Deps) *ShrinkSystem {
	return &ShrinkSystem{deps: deps}
}

func (s *ShrinkSystem) Phase() coresys.Phase { return coresys.PhaseShrink }

// ResetRound restarts the hazard timer.
func (s *ShrinkSystem) ResetRound() { s.elapsed = 0 }

func (s *ShrinkSystem) Update(dt time.Duration) {
	s.elapsed += dt.Seconds()
	if s.elapsed <= s.deps.Sim.ShrinkEvery.Seconds() {
		return
	}
	s.elapsed = 0

	ws := s.deps.World
	tile, dist, ok := s.farthestStaticTile()
	if !ok {
		return
	}
	ws.Phys.SetBodyType(tile, physics.Dynamic)
	event.Emit(ws.Bus, event.TileDropped{Tile: tile, Distance: dist})
	s.deps.Log.Info("ground tile dropped", zap.Stringer("tile", tile), zap.Float64("distance", dist))
}

// farthestStaticTile picks by planar distance to the ship point; ties go to
// the tile spawned first.
func (s *ShrinkSystem) farthestStaticTile() (ecs.EntityID, float64, bool) {
	ws := s.deps.World
	var best ecs.EntityID
	bestDist := -1.0
	ws.Kinds.Each(func(id ecs.EntityID, k *component.Kind) {
		if *k != component.KindGround || !ws.Alive(id) {
			return
		}
		if bt, ok := ws.Phys.BodyType(id); !ok || bt != physics.Static {
			return
		}
		pos, ok := ws.Phys.Position(id)
		if !ok {
			return
		}
		if d := mathx.PlanarDistance(pos, ws.Ship); d > bestDist {
			best, bestDist = id, d
		}
	})
	return best, bestDist, bestDist >= 0
}
