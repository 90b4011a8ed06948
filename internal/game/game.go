// Package game drives one arena session: the round state machine, the
// fixed-step accumulator and the two system runners.
package game

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/config"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"github.com/shmoopmanager/sim/internal/data"
	"github.com/shmoopmanager/sim/internal/input"
	"github.com/shmoopmanager/sim/internal/physics"
	"github.com/shmoopmanager/sim/internal/system"
	"github.com/shmoopmanager/sim/internal/world"
	"go.uber.org/zap"
)

// RoundState is the outer state of a session.
type RoundState uint8

const (
	StateLoading RoundState = iota
	StateStartScreen
	StatePlaying
	StatePendingStart
)

func (s RoundState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateStartScreen:
		return "start_screen"
	case StatePlaying:
		return "playing"
	case StatePendingStart:
		return "pending_start"
	}
	return "unknown"
}

// Options wires a Game. Input defaults to input.Idle and Log to a no-op
// logger; Hunger may be nil for the built-in drain.
type Options struct {
	Config *config.Config
	Layout *data.Layout
	Input  input.Source
	Camera *input.Camera
	Hunger system.HungerDrain
	Log    *zap.Logger
}

// Game owns the world, the physics collaborator and both runners.
type Game struct {
	cfg    *config.Config
	layout *data.Layout
	input  input.Source
	log    *zap.Logger

	phys    *physics.World
	world   *world.State
	bus     *event.Bus
	pointer *system.Pointer

	fixed *coresys.Runner
	frame *coresys.Runner

	hunger *system.HungerSystem
	shrink *system.ShrinkSystem

	state   RoundState
	round   int
	now     time.Duration
	acc     time.Duration
	dropped uint64
	outcome outcome
	tally   Tally
}

// New builds a session in the Loading state. Nothing is spawned until the
// first Advance.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	src := opts.Input
	if src == nil {
		src = input.Idle
	}
	cam := opts.Camera
	if cam == nil {
		c := cfg.Camera
		cam = input.NewCamera(data.Vec(c.Position), data.Vec(c.LookAt), c.ViewportHeight, c.Width, c.Height)
	}

	phys := physics.NewWorld(physics.Config{
		Gravity:       mgl64.Vec3{0, -cfg.Physics.Gravity, 0},
		ContactMargin: cfg.Physics.ContactMargin,
		GroundDamping: cfg.Physics.GroundDamping,
	})
	bus := event.NewBus()
	ws := world.NewState(phys, bus, log)

	g := &Game{
		cfg:     cfg,
		layout:  opts.Layout,
		input:   src,
		log:     log,
		phys:    phys,
		world:   ws,
		bus:     bus,
		pointer: &system.Pointer{Camera: cam},
		fixed:   coresys.NewRunner(coresys.Fixed),
		frame:   coresys.NewRunner(coresys.Frame),
	}

	deps := &system.Deps{
		World:   ws,
		Sim:     cfg.Sim,
		Pointer: g.pointer,
		Rand:    rand.New(rand.NewSource(cfg.Random.Seed)),
		Log:     log,
	}
	if opts.Hunger != nil {
		deps.Hunger = opts.Hunger
	}

	g.hunger = system.NewHungerSystem(deps)
	g.shrink = system.NewShrinkSystem(deps)

	g.fixed.MustRegister(system.NewDragSystem(deps))
	g.fixed.MustRegister(g.hunger)
	g.fixed.MustRegister(system.NewMovementSystem(deps))
	g.fixed.MustRegister(system.NewWanderSystem(deps))
	g.fixed.MustRegister(g.shrink)
	g.fixed.MustRegister(system.NewPhysicsStepSystem(deps))

	g.frame.MustRegister(system.NewDispatchSystem(bus))
	g.frame.MustRegister(system.NewGoalTimerSystem(deps))
	g.frame.MustRegister(system.NewAbandonSystem(deps))
	g.frame.MustRegister(system.NewSelectSystem(deps))
	g.frame.MustRegister(system.NewInteractionSystem(deps))
	g.frame.MustRegister(system.NewFallDeathSystem(deps))
	g.frame.MustRegister(system.NewDespawnSystem(deps))
	g.frame.MustRegister(system.NewCleanupSystem(deps))

	g.subscribe()
	return g
}

// Advance moves the session forward by one rendered frame of length frameDt.
func (g *Game) Advance(frameDt time.Duration) {
	g.now += frameDt
	snap := g.input.Poll(g.now)
	g.pointer.Snap = snap

	switch g.state {
	case StateLoading:
		if g.layout == nil {
			return
		}
		g.spawnShip()
		g.setState(StateStartScreen)
	case StateStartScreen:
		if snap.Restart {
			g.setState(StatePendingStart)
		}
	case StatePendingStart:
		g.reset()
		g.setState(StatePlaying)
	case StatePlaying:
		g.stepFixed(frameDt)
		g.frame.Tick(frameDt)
		g.checkOutcome()
		if g.log.Core().Enabled(zap.DebugLevel) {
			if err := g.world.CheckInvariants(); err != nil {
				g.log.Error("world invariants violated", zap.Error(err))
			}
		}
		if snap.Restart {
			g.setState(StatePendingStart)
		}
	}
}

// stepFixed runs as many fixed ticks as the accumulated time allows, capped
// at MaxFixedSteps. Time beyond the cap is discarded.
func (g *Game) stepFixed(frameDt time.Duration) {
	step := g.cfg.Loop.FixedStep()
	g.acc += frameDt
	n := 0
	for g.acc >= step {
		if n == g.cfg.Loop.MaxFixedSteps {
			g.dropped += uint64(g.acc / step)
			g.log.Debug("fixed step backlog dropped", zap.Duration("backlog", g.acc))
			g.acc = 0
			return
		}
		g.fixed.Tick(step)
		g.acc -= step
		n++
	}
}

func (g *Game) setState(s RoundState) {
	if g.state == s {
		return
	}
	g.log.Debug("round state", zap.Stringer("from", g.state), zap.Stringer("to", s))
	g.state = s
}

// State returns the current round state.
func (g *Game) State() RoundState { return g.state }

// Round returns how many rounds have started.
func (g *Game) Round() int { return g.round }

// Now returns the session clock.
func (g *Game) Now() time.Duration { return g.now }

// Ticks returns how many fixed ticks have run, and how many were dropped by
// the step cap.
func (g *Game) Ticks() (run, dropped uint64) { return g.fixed.Ticks(), g.dropped }

// World exposes the shared store to presenters and tests.
func (g *Game) World() *world.State { return g.world }

// Status is the current round summary.
func (g *Game) Status() world.Status { return g.world.Status() }

// Tally returns the event counts of the current round.
func (g *Game) Tally() Tally { return g.tally }
