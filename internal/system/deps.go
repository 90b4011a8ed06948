package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/config"
	"github.com/shmoopmanager/sim/internal/input"
	"github.com/shmoopmanager/sim/internal/physics"
	"github.com/shmoopmanager/sim/internal/scripting"
	"github.com/shmoopmanager/sim/internal/world"
	"go.uber.org/zap"
)

// Deps bundles what the simulation systems share.
type Deps struct {
	World   *world.State
	Sim     config.SimConfig
	Pointer *Pointer
	Hunger  HungerDrain // nil = scripting.DefaultHungerDrain
	Rand    *rand.Rand
	Log     *zap.Logger
}

// HungerDrain computes how much hunger an agent loses in one tick.
// *scripting.Engine implements it through its Lua hook.
type HungerDrain interface {
	CalcHungerDrain(ctx scripting.HungerContext) float64
}

// Pointer is the pointer state of the current frame, shared by the
// selection system (frame cadence) and the drag system (fixed cadence).
type Pointer struct {
	Camera *input.Camera
	Snap   input.Snapshot
}

// Cast returns what lies under the pointer, if anything.
func (p *Pointer) Cast(phys world.Physics, maxDist float64) (physics.RayHit, bool) {
	if p == nil || p.Camera == nil || !p.Snap.HasPointer {
		return physics.RayHit{}, false
	}
	ray, ok := p.Camera.ViewportToWorld(p.Snap.Pointer)
	if !ok {
		return physics.RayHit{}, false
	}
	return phys.CastRay(ray.Origin, ray.Direction, maxDist)
}

var zero mgl64.Vec3
