package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"github.com/shmoopmanager/sim/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func foodCaps() component.Caps {
	return component.Caps{FoodStore: true, CanBeCarried: true, Restartable: true}
}

func hungerOf(t *testing.T, h *harness, id ecs.EntityID) float64 {
	t.Helper()
	hu, ok := h.ws.Hungers.Get(id)
	if !ok {
		t.Fatalf("%s has no hunger", id)
	}
	return hu.Percentage
}

func TestHunger_StarvesAfter25SecondsAndTargetsFood(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	foodPos := mgl64.Vec3{3, 0, 0}
	food := h.item(foodPos, foodCaps())
	sys := NewHungerSystem(h.deps)

	last := hungerOf(t, h, a)
	for i := 0; i < 25*64-1; i++ {
		sys.Update(tick)
		cur := hungerOf(t, h, a)
		if cur >= last {
			t.Fatalf("tick %d: hunger must strictly decrease (%f -> %f)", i, last, cur)
		}
		last = cur
	}
	if last != 0.0625 {
		t.Errorf("one tick before 25s expected 0.0625, got %f", last)
	}
	if h.ws.Goals.Has(a) {
		t.Fatalf("no override before starving")
	}

	sys.Update(tick)
	if got := hungerOf(t, h, a); got != 0 {
		t.Errorf("expected hunger 0 at 25s, got %f", got)
	}
	g, ok := h.ws.Goal(a)
	if !ok || g.Target != food {
		t.Fatalf("expected food target on the starving tick, got %+v", g)
	}
	if g.Destination != foodPos || g.Age != 0 {
		t.Errorf("expected destination %v age 0, got %+v", foodPos, g)
	}
	evs := event.Pending[event.GoalAssigned](h.ws.Bus)
	if len(evs) != 1 || evs[0].Cause != event.CauseHunger {
		t.Errorf("expected one hunger goal event, got %+v", evs)
	}
}

func TestHunger_CarryingDrainsSevenTimesFaster(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	b := h.agent(mgl64.Vec3{5, 0, 0})
	item := h.item(mgl64.Vec3{0.2, 0, 0}, carryableCaps())
	h.ws.StartCarry(a, item, h.pw.CreateDistanceJoint(jointDef(a, item)))

	NewHungerSystem(h.deps).Update(tick)

	if got := 100 - hungerOf(t, h, a); math.Abs(got-0.4375) > 1e-12 {
		t.Errorf("carrying drain: expected 0.4375, got %f", got)
	}
	if got := 100 - hungerOf(t, h, b); math.Abs(got-0.0625) > 1e-12 {
		t.Errorf("idle drain: expected 0.0625, got %f", got)
	}
}

func TestHunger_OverrideReappliedWithoutNewEvent(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	food := h.item(mgl64.Vec3{3, 0, 0}, foodCaps())
	h.ws.Hungers.Set(a, &component.Hunger{Percentage: 0})
	sys := NewHungerSystem(h.deps)

	sys.Update(tick)
	g, _ := h.ws.Goal(a)
	g.Age = 3
	sys.Update(tick)

	g, ok := h.ws.Goal(a)
	if !ok || g.Target != food || g.Age != 0 {
		t.Errorf("expected refreshed food goal, got %+v", g)
	}
	if n := len(event.Pending[event.GoalAssigned](h.ws.Bus)); n != 1 {
		t.Errorf("expected a single goal event, got %d", n)
	}
}

func TestHunger_OverrideReplacesPlayerGoal(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	food := h.item(mgl64.Vec3{3, 0, 0}, foodCaps())
	h.ws.AssignGoal(a, mgl64.Vec3{-4, 0, 0}, 0, event.CausePlayer)
	h.ws.Hungers.Set(a, &component.Hunger{Percentage: 0.01})

	NewHungerSystem(h.deps).Update(tick)

	if g, _ := h.ws.Goal(a); g == nil || g.Target != food {
		t.Errorf("starving agent must head for food, got %+v", g)
	}
}

func TestHunger_PickedAgentNotOverridden(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	h.item(mgl64.Vec3{3, 0, 0}, foodCaps())
	h.ws.Hungers.Set(a, &component.Hunger{Percentage: 0.01})
	h.ws.Pick(a)

	NewHungerSystem(h.deps).Update(tick)

	if got := hungerOf(t, h, a); got != 0 {
		t.Errorf("hunger must clamp at 0, got %f", got)
	}
	if h.ws.Goals.Has(a) {
		t.Errorf("picked agent must not get a goal")
	}
	h.checkInvariants()
}

func TestHunger_NeedsExactlyOneFoodStore(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := newHarness(t)
	h.deps.Log = zap.New(core)
	a := h.agent(mgl64.Vec3{})
	h.ws.Hungers.Set(a, &component.Hunger{Percentage: 0})
	sys := NewHungerSystem(h.deps)

	sys.Update(tick) // no store at all
	h.item(mgl64.Vec3{1, 0, 0}, foodCaps())
	h.item(mgl64.Vec3{2, 0, 0}, foodCaps())
	sys.Update(tick) // two stores

	if h.ws.Goals.Has(a) {
		t.Errorf("ambiguous food store must be skipped")
	}
	if n := logs.FilterMessageSnippet("food store").Len(); n != 1 {
		t.Errorf("expected one warning per round, got %d", n)
	}

	sys.ResetRound()
	sys.Update(tick)
	if n := logs.FilterMessageSnippet("food store").Len(); n != 2 {
		t.Errorf("expected the warning re-armed after a reset, got %d", n)
	}
}

func TestHunger_LuaHook(t *testing.T) {
	h := newHarness(t)
	eng, err := scripting.NewEngineFromString(`function calc_hunger_drain(ctx) return 50 end`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close()
	h.deps.Hunger = eng
	a := h.agent(mgl64.Vec3{})

	NewHungerSystem(h.deps).Update(tick)

	if got := hungerOf(t, h, a); got != 50 {
		t.Errorf("expected script drain to leave 50, got %f", got)
	}
}

// fixedDrain is a hunger hook that always returns the same amount.
type fixedDrain float64

func (d fixedDrain) CalcHungerDrain(scripting.HungerContext) float64 { return float64(d) }

func TestHunger_StaysWithinBounds(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	h.item(mgl64.Vec3{3, 0, 0}, foodCaps())
	sys := NewHungerSystem(h.deps)

	h.deps.Hunger = fixedDrain(-50)
	sys.Update(tick)
	if got := hungerOf(t, h, a); got != 100 {
		t.Errorf("negative drain must cap at 100, got %f", got)
	}

	h.deps.Hunger = fixedDrain(math.Inf(1))
	sys.Update(tick)
	if got := hungerOf(t, h, a); got != 0 {
		t.Errorf("infinite drain must floor at 0, got %f", got)
	}
}

func TestHunger_NaNDrainUsesStockRate(t *testing.T) {
	h := newHarness(t)
	a := h.agent(mgl64.Vec3{})
	h.item(mgl64.Vec3{3, 0, 0}, foodCaps())
	h.deps.Hunger = fixedDrain(math.NaN())

	NewHungerSystem(h.deps).Update(tick)

	if got := hungerOf(t, h, a); got != 99.9375 {
		t.Errorf("expected the stock drain to leave 99.9375, got %f", got)
	}
	if h.ws.Goals.Has(a) {
		t.Errorf("a well-fed agent must not be sent to food")
	}
}
