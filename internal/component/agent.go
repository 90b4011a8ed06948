package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/physics"
)

// Pure data with trivial accessors only. All mutations happen in
// systems or in the world's goal helpers.

// Hunger is a 0-100 satiety percentage; 0 means starving.
type Hunger struct {
	Percentage float64
}

// Goal is present on an agent iff it has a destination or an interaction
// target. The whole struct is added and removed as one unit.
type Goal struct {
	Destination mgl64.Vec3
	Target      ecs.EntityID // zero when the goal is a plain destination
	Age         float64      // seconds since assignment
}

// HasTarget reports whether the goal is an interaction goal.
func (g *Goal) HasTarget() bool { return !g.Target.IsZero() }

// Carrying pairs an agent with the object it holds and the physics joint
// holding it. Created only by the interaction resolver, released only by goal
// pursuit on arrival (or by teardown when either side leaves the world).
type Carrying struct {
	Target ecs.EntityID
	Joint  physics.JointID
}

// Picked marks the single agent under direct pointer control.
type Picked struct{}

// Dead is recomputed every frame from the agent's height.
type Dead struct{}

// HighlightMode tells the outline presenter how to draw an entity.
type HighlightMode uint8

const (
	HighlightNone HighlightMode = iota
	HighlightHover
	HighlightPicking
	HighlightTarget
)

// Highlight is rewritten by the selection system every frame.
type Highlight struct {
	Mode HighlightMode
}
