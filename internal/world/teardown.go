package world

import (
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"go.uber.org/zap"
)

// Despawn removes an entity from the simulation: carry links on either side
// are released (joint and component together), the physics body goes away
// now and the components are dropped at the next cleanup.
func (s *State) Despawn(id ecs.EntityID, depth float64) {
	if !s.Alive(id) {
		return
	}
	s.releaseCarryLinks(id)
	s.Unpick(id)
	s.Phys.RemoveBody(id)
	s.ecs.MarkForDestruction(id)
	event.Emit(s.Bus, event.Despawned{Entity: id, Depth: depth})
	s.log.Info("despawned entity below the map", zap.Stringer("entity", id), zap.Float64("y", depth))
}

func (s *State) releaseCarryLinks(id ecs.EntityID) {
	s.ReleaseCarry(id)
	s.Carryings.Each(func(agent ecs.EntityID, c *component.Carrying) {
		if c.Target == id {
			s.ReleaseCarry(agent)
		}
	})
}

// ClearRestartables destroys every entity flagged Restartable immediately,
// with its body and joints. Returns how many were removed.
func (s *State) ClearRestartables() int {
	var doomed []ecs.EntityID
	s.Caps.Each(func(id ecs.EntityID, c *component.Caps) {
		if c.Restartable {
			doomed = append(doomed, id)
		}
	})
	for _, id := range doomed {
		s.releaseCarryLinks(id)
	}
	for _, id := range doomed {
		s.Phys.RemoveBody(id)
		s.ecs.DestroyNow(id)
	}
	return len(doomed)
}

// FlushDestroyed drops the components of despawned entities.
func (s *State) FlushDestroyed() int {
	return s.ecs.FlushDestroyQueue()
}
