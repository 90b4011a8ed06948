package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

func newTestState() (*State, *physics.World) {
	pw := physics.NewWorld(physics.Config{ContactMargin: 0.01})
	return NewState(pw, event.NewBus(), zap.NewNop()), pw
}

func box(pos mgl64.Vec3, t physics.BodyType) physics.BodyDef {
	return physics.BodyDef{Type: t, Position: pos, HalfExtents: mgl64.Vec3{0.1, 0.1, 0.1}, Mass: 1}
}

func spawnAgent(s *State, pos mgl64.Vec3) ecs.EntityID {
	return s.Spawn(component.KindAgent, component.Caps{Restartable: true}, box(pos, physics.Dynamic))
}

func spawnLog(s *State, pos mgl64.Vec3) ecs.EntityID {
	return s.Spawn(component.KindItem, component.Caps{Interactable: true, CanBeCarried: true, Log: true, Restartable: true}, box(pos, physics.Dynamic))
}

func TestSpawn_AgentStartsFull(t *testing.T) {
	s, _ := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	h, ok := s.Hungers.Get(a)
	if !ok || h.Percentage != 100 {
		t.Fatalf("expected hunger 100, got %+v ok=%v", h, ok)
	}
	if !s.IsAgent(a) {
		t.Errorf("expected %s to be an agent", a)
	}
	l := spawnLog(s, mgl64.Vec3{1, 0, 0})
	if s.IsAgent(l) || s.Hungers.Has(l) {
		t.Errorf("log must not be an agent")
	}
}

func TestAssignGoal_ReplacesPriorGoal(t *testing.T) {
	s, _ := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	l := spawnLog(s, mgl64.Vec3{1, 0, 0})

	s.AssignGoal(a, mgl64.Vec3{1, 0, 0}, l, event.CausePlayer)
	g, _ := s.Goal(a)
	g.Age = 4

	s.AssignGoal(a, mgl64.Vec3{3, 0, 3}, 0, event.CauseWander)
	g, ok := s.Goal(a)
	if !ok {
		t.Fatalf("expected goal")
	}
	if g.HasTarget() || g.Age != 0 || g.Destination != (mgl64.Vec3{3, 0, 3}) {
		t.Errorf("expected fresh plain destination, got %+v", g)
	}
	if n := len(event.Pending[event.GoalAssigned](s.Bus)); n != 2 {
		t.Errorf("expected 2 GoalAssigned events, got %d", n)
	}

	if !s.ClearGoal(a) {
		t.Errorf("expected ClearGoal to report a cleared goal")
	}
	if s.ClearGoal(a) {
		t.Errorf("second ClearGoal must report nothing cleared")
	}
}

func TestPick_IsExclusiveAndClearsGoal(t *testing.T) {
	s, _ := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	b := spawnAgent(s, mgl64.Vec3{1, 0, 0})
	s.AssignGoal(a, mgl64.Vec3{2, 0, 2}, 0, event.CauseWander)

	if !s.Pick(a) {
		t.Fatalf("expected pick to succeed")
	}
	if s.Goals.Has(a) {
		t.Errorf("picking must clear the goal")
	}
	if s.Pick(b) {
		t.Errorf("second agent must not be picked while %s is", a)
	}
	if id, ok := s.PickedAgent(); !ok || id != a {
		t.Errorf("expected picked agent %s, got %s", a, id)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Errorf("unexpected invariant violation: %v", err)
	}

	s.Unpick(a)
	if !s.Pick(b) {
		t.Errorf("expected pick of %s after release", b)
	}
}

func TestReleaseCarry_DestroysJoint(t *testing.T) {
	s, pw := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	l := spawnLog(s, mgl64.Vec3{0.2, 0, 0})
	jid := pw.CreateDistanceJoint(physics.JointDef{Entity1: a, Entity2: l})
	s.StartCarry(a, l, jid)

	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
	if !s.ReleaseCarry(a) {
		t.Fatalf("expected release")
	}
	if pw.JointAlive(jid) || s.Carryings.Has(a) {
		t.Errorf("joint and component must go together")
	}
}

func TestDespawn_CarriedObjectReleasesCarrier(t *testing.T) {
	s, pw := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	l := spawnLog(s, mgl64.Vec3{0.2, 0, 0})
	jid := pw.CreateDistanceJoint(physics.JointDef{Entity1: a, Entity2: l})
	s.StartCarry(a, l, jid)
	s.AssignGoal(a, mgl64.Vec3{}, l, event.CausePlayer)

	s.Despawn(l, -51)
	if s.Alive(l) {
		t.Errorf("despawned entity must not be alive")
	}
	if s.Carryings.Has(a) || pw.JointAlive(jid) {
		t.Errorf("carrier must be released when its load despawns")
	}
	if _, ok := pw.Body(l); ok {
		t.Errorf("body must be removed immediately")
	}
	// The dangling interaction target stays until abandonment.
	if g, ok := s.Goal(a); !ok || g.Target != l {
		t.Errorf("goal must be left pending, got %+v", g)
	}

	if n := s.FlushDestroyed(); n != 1 {
		t.Errorf("expected 1 entity flushed, got %d", n)
	}
	if n := s.ECS().Registry().Holds(l); n != 0 {
		t.Errorf("components must be dropped at flush, %d stores still hold %s", n, l)
	}
}

func TestFoodStore_Singleton(t *testing.T) {
	s, _ := newTestState()
	if _, n := s.FoodStore(); n != 0 {
		t.Fatalf("expected no food store, got %d", n)
	}
	f := s.Spawn(component.KindItem, component.Caps{Interactable: true, FoodStore: true, CanBeCarried: true}, box(mgl64.Vec3{}, physics.Dynamic))
	if id, n := s.FoodStore(); n != 1 || id != f {
		t.Errorf("expected single food store %s, got %s n=%d", f, id, n)
	}
	s.Spawn(component.KindItem, component.Caps{Interactable: true, FoodStore: true}, box(mgl64.Vec3{2, 0, 0}, physics.Dynamic))
	if _, n := s.FoodStore(); n != 2 {
		t.Errorf("expected 2 food stores, got %d", n)
	}
}

func TestStatus_CountsByScanning(t *testing.T) {
	s, pw := newTestState()
	a := spawnAgent(s, mgl64.Vec3{-7, 0.5, 0})
	b := spawnAgent(s, mgl64.Vec3{2, 0.5, 0})
	spawnLog(s, mgl64.Vec3{-7.5, 0.5, 0.5})
	l2 := spawnLog(s, mgl64.Vec3{3, 0.5, 0})

	st := s.Status()
	if st.Survivors != 2 || st.AgentsOnShip != 1 || st.LogsCollected != 1 || st.LogsTotal != 2 || st.AllOnShip || st.LostAll {
		t.Fatalf("unexpected status %+v", st)
	}

	pw.SetPosition(b, mgl64.Vec3{-7.2, 0.5, 1})
	pw.SetPosition(l2, mgl64.Vec3{-6.5, 0.5, 1})
	if st := s.Status(); !st.AllOnShip {
		t.Errorf("expected all on ship, got %+v", st)
	}

	s.Deads.Set(a, &component.Dead{})
	s.Deads.Set(b, &component.Dead{})
	if st := s.Status(); !st.LostAll || st.AllOnShip || st.Survivors != 0 {
		t.Errorf("expected lost-all, got %+v", st)
	}
}

func TestClearRestartables(t *testing.T) {
	s, pw := newTestState()
	floor := s.Spawn(component.KindShipFloor, component.Caps{DragSurface: true}, box(mgl64.Vec3{}, physics.Static))
	a := spawnAgent(s, mgl64.Vec3{0, 1, 0})
	l := spawnLog(s, mgl64.Vec3{0, 2, 0})
	s.StartCarry(a, l, pw.CreateDistanceJoint(physics.JointDef{Entity1: a, Entity2: l}))

	if n := s.ClearRestartables(); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if !s.Alive(floor) || s.Alive(a) || s.Alive(l) {
		t.Errorf("only restartables may be removed")
	}
	if pw.BodyCount() != 1 || pw.JointCount() != 0 {
		t.Errorf("expected 1 body and no joints, got %d bodies %d joints", pw.BodyCount(), pw.JointCount())
	}
}

func TestCheckInvariants_DetectsOrphanCarry(t *testing.T) {
	s, _ := newTestState()
	a := spawnAgent(s, mgl64.Vec3{})
	l := spawnLog(s, mgl64.Vec3{1, 0, 0})
	s.Carryings.Set(a, &component.Carrying{Target: l, Joint: 99})
	if err := s.CheckInvariants(); err == nil {
		t.Errorf("expected violation for carrying without joint")
	}
}
