package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/config"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"github.com/shmoopmanager/sim/internal/input"
	"github.com/shmoopmanager/sim/internal/physics"
	"github.com/shmoopmanager/sim/internal/world"
	"go.uber.org/zap"
)

// tick is the fixed step used throughout: 1/64 s is exact in binary, so
// positions and hunger stay exact over thousands of steps.
const tick = time.Second / 64

type harness struct {
	t    *testing.T
	ws   *world.State
	pw   *physics.World
	deps *Deps
}

// newHarness builds a gravity-free world with stock tuning except for
// MoveSpeed, which is 64 so that dt·MoveSpeed is exactly 1 unit per second.
func newHarness(t *testing.T) *harness {
	t.Helper()
	pw := physics.NewWorld(physics.Config{ContactMargin: 0.01})
	ws := world.NewState(pw, event.NewBus(), zap.NewNop())
	sim := config.Default().Sim
	sim.MoveSpeed = 64
	cam := input.NewCamera(mgl64.Vec3{5, 5, -5}, mgl64.Vec3{0, 2.5, 0}, 10, 1280, 720)
	return &harness{
		t:  t,
		ws: ws,
		pw: pw,
		deps: &Deps{
			World:   ws,
			Sim:     sim,
			Pointer: &Pointer{Camera: cam},
			Rand:    rand.New(rand.NewSource(1)),
			Log:     zap.NewNop(),
		},
	}
}

func (h *harness) agent(pos mgl64.Vec3) ecs.EntityID {
	return h.ws.Spawn(component.KindAgent, component.Caps{Restartable: true}, physics.BodyDef{
		Type: physics.Dynamic, Position: pos, HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1}, Mass: 1, LockTilt: true,
	})
}

func (h *harness) item(pos mgl64.Vec3, caps component.Caps) ecs.EntityID {
	caps.Interactable = true
	return h.ws.Spawn(component.KindItem, caps, physics.BodyDef{
		Type: physics.Dynamic, Position: pos, HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1}, Mass: 1,
	})
}

func (h *harness) ground(pos, half mgl64.Vec3) ecs.EntityID {
	return h.ws.Spawn(component.KindGround, component.Caps{DragSurface: true, Restartable: true}, physics.BodyDef{
		Type: physics.Static, Position: pos, HalfExtents: half, Mass: 300,
	})
}

// aim places the pointer over a world point.
func (h *harness) aim(p mgl64.Vec3, held bool) {
	h.t.Helper()
	screen, ok := h.deps.Pointer.Camera.WorldToViewport(p)
	if !ok {
		h.t.Fatalf("aim point %v is off screen", p)
	}
	h.deps.Pointer.Snap = input.Snapshot{Pointer: screen, HasPointer: true, SelectHeld: held}
}

func (h *harness) pos(id ecs.EntityID) mgl64.Vec3 {
	h.t.Helper()
	p, ok := h.pw.Position(id)
	if !ok {
		h.t.Fatalf("%s has no body", id)
	}
	return p
}

func (h *harness) checkInvariants() {
	h.t.Helper()
	if err := h.ws.CheckInvariants(); err != nil {
		h.t.Fatalf("invariants: %v", err)
	}
}

func near(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func carryableCaps() component.Caps {
	return component.Caps{CanBeCarried: true, Log: true, Restartable: true}
}

func goalTo(dest mgl64.Vec3) *component.Goal {
	return &component.Goal{Destination: dest}
}

func jointDef(a, b ecs.EntityID) physics.JointDef {
	return physics.JointDef{Entity1: a, Entity2: b, Compliance: 0.5}
}
