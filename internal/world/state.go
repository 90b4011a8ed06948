package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

// DefaultHalfSize is the arena half-extent restored at every reset.
var DefaultHalfSize = mgl64.Vec3{5, 0, 5}

// Bounds is the arena half-extent. HalfSize.Y doubles as the height below
// which an agent counts as fallen.
type Bounds struct {
	HalfSize mgl64.Vec3
}

// ShipZone is the region counted as "on the ship" for the round summary.
type ShipZone struct {
	MaxX float64 // x <= MaxX
	MinY float64 // y >= MinY
}

func (z ShipZone) Contains(p mgl64.Vec3) bool {
	return p.X() <= z.MaxX && p.Y() >= z.MinY
}

// State is the shared entity/component store every system reads and writes.
// Accessed only from the simulation goroutine, so there are no locks.
type State struct {
	ecs  *ecs.World
	Phys Physics
	Bus  *event.Bus
	log  *zap.Logger

	Kinds      *ecs.Store[component.Kind]
	Caps       *ecs.Store[component.Caps]
	Hungers    *ecs.Store[component.Hunger] // one entry per agent
	Goals      *ecs.Store[component.Goal]
	Carryings  *ecs.Store[component.Carrying]
	Picks      *ecs.Store[component.Picked]
	Deads      *ecs.Store[component.Dead]
	Highlights *ecs.Store[component.Highlight]

	Bounds   Bounds
	Ship     mgl64.Vec3 // hazard reference point
	ShipZone ShipZone
}

func NewState(phys Physics, bus *event.Bus, log *zap.Logger) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	return &State{
		ecs:        w,
		Phys:       phys,
		Bus:        bus,
		log:        log,
		Kinds:      ecs.Register[component.Kind](r),
		Caps:       ecs.Register[component.Caps](r),
		Hungers:    ecs.Register[component.Hunger](r),
		Goals:      ecs.Register[component.Goal](r),
		Carryings:  ecs.Register[component.Carrying](r),
		Picks:      ecs.Register[component.Picked](r),
		Deads:      ecs.Register[component.Dead](r),
		Highlights: ecs.Register[component.Highlight](r),
		Bounds:     Bounds{HalfSize: DefaultHalfSize},
		Ship:       mgl64.Vec3{-6.8, 0.5, 0},
		ShipZone:   ShipZone{MaxX: -6, MinY: 0},
	}
}

// ECS exposes the underlying entity world (cleanup and tests).
func (s *State) ECS() *ecs.World { return s.ecs }

// Spawn creates an entity of the given kind with a physics body. Agents start
// with full hunger.
func (s *State) Spawn(kind component.Kind, caps component.Caps, body physics.BodyDef) ecs.EntityID {
	id := s.ecs.CreateEntity()
	k := kind
	c := caps
	s.Kinds.Set(id, &k)
	s.Caps.Set(id, &c)
	if kind == component.KindAgent {
		s.Hungers.Set(id, &component.Hunger{Percentage: 100})
	}
	if kind == component.KindAgent || caps.Interactable {
		s.Highlights.Set(id, &component.Highlight{})
	}
	s.Phys.AddBody(id, body)
	return id
}

// Alive reports whether id refers to a live entity that is not on its way
// out. Every cross-entity reference must be checked with it before use.
func (s *State) Alive(id ecs.EntityID) bool {
	return s.ecs.Alive(id) && !s.ecs.PendingDestruction(id)
}

// KindOf returns the entity's kind.
func (s *State) KindOf(id ecs.EntityID) (component.Kind, bool) {
	if !s.Alive(id) {
		return 0, false
	}
	k, ok := s.Kinds.Get(id)
	if !ok {
		return 0, false
	}
	return *k, true
}

// IsAgent reports whether id is a live agent.
func (s *State) IsAgent(id ecs.EntityID) bool {
	k, ok := s.KindOf(id)
	return ok && k == component.KindAgent
}

// CapsOf returns the capability flags of a live entity.
func (s *State) CapsOf(id ecs.EntityID) (component.Caps, bool) {
	if !s.Alive(id) {
		return component.Caps{}, false
	}
	c, ok := s.Caps.Get(id)
	if !ok {
		return component.Caps{}, false
	}
	return *c, true
}

// IsPicked reports whether the agent is under pointer control.
func (s *State) IsPicked(id ecs.EntityID) bool {
	return s.Picks.Has(id)
}

// EachAgent visits every live agent in spawn order.
func (s *State) EachAgent(fn func(id ecs.EntityID, h *component.Hunger)) {
	s.Hungers.Each(func(id ecs.EntityID, h *component.Hunger) {
		if s.Alive(id) {
			fn(id, h)
		}
	})
}

// FoodStore returns the food store entity and how many exist. The entity is
// only meaningful when the count is exactly one.
func (s *State) FoodStore() (ecs.EntityID, int) {
	var found ecs.EntityID
	n := 0
	s.Caps.Each(func(id ecs.EntityID, c *component.Caps) {
		if !c.FoodStore || !c.Interactable || !s.Alive(id) {
			return
		}
		if k, _ := s.KindOf(id); k == component.KindAgent {
			return
		}
		if n == 0 {
			found = id
		}
		n++
	})
	return found, n
}

// ResetBounds restores the full arena size.
func (s *State) ResetBounds() {
	s.Bounds = Bounds{HalfSize: DefaultHalfSize}
}
