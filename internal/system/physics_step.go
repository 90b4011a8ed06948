package system

import (
	"time"

	coresys "github.com/shmoopmanager/sim/internal/core/system"
)

// PhysicsStepSystem advances the physics collaborator. Runs last in the
// fixed pass so every frame system reads freshly resolved poses and contacts.
type PhysicsStepSystem struct {
	deps *Deps
}

func NewPhysicsStepSystem(deps *Deps) *PhysicsStepSystem {
	return &PhysicsStepSystem{deps: deps}
}

func (s *PhysicsStepSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsStepSystem) Update(dt time.Duration) {
	s.deps.World.Phys.Step(dt.Seconds())
}
