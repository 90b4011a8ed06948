package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shmoopmanager/sim/internal/config"
	"github.com/shmoopmanager/sim/internal/data"
	"github.com/shmoopmanager/sim/internal/game"
	"github.com/shmoopmanager/sim/internal/hud"
	"github.com/shmoopmanager/sim/internal/input"
	"github.com/shmoopmanager/sim/internal/scripting"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(layout string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          shmoop arena simulator           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlayout:\033[0m %s\n\n", layout)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

const (
	markDone = "\033[32m✓\033[0m"
	markRun  = "\033[36m▶\033[0m"
)

func printItem(mark, format string, args ...any) {
	fmt.Printf("  %s %s\n", mark, fmt.Sprintf(format, args...))
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("SHMOOP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Arena layout
	layout, err := data.LoadLayout(cfg.Paths.Layout)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	printBanner(layout.Name)
	printSection("arena")
	printStat("ship parts", len(layout.Ship))
	printStat("ground tiles", len(layout.Ground.Spawns))
	printStat("agents", len(layout.Agents.Spawns))
	printStat("food", len(layout.Food.Items))
	printStat("logs", len(layout.Logs.Spawns))
	if n := layout.StoreCount(); n != 1 {
		log.Warn("layout should have exactly one food store", zap.Int("stores", n))
	}
	fmt.Println()

	// 4. Lua tuning scripts
	printSection("scripts")
	engine, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	if engine.HasFunc("calc_hunger_drain") {
		printItem(markDone, "hunger drain hook loaded")
	} else {
		printItem(markDone, "built-in hunger drain")
	}
	fmt.Println()

	// 5. Camera and input
	cam := input.NewCamera(data.Vec(cfg.Camera.Position), data.Vec(cfg.Camera.LookAt),
		cfg.Camera.ViewportHeight, cfg.Camera.Width, cfg.Camera.Height)
	var src input.Source
	if cfg.Paths.InputScript != "" {
		script, err := data.LoadInputScript(cfg.Paths.InputScript)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		src = input.NewScript(script, cam, log)
	} else {
		src = startAt(2 * cfg.Loop.FrameStep())
	}

	panels, err := hud.New(cfg.HUD.Language)
	if err != nil {
		return fmt.Errorf("hud: %w", err)
	}

	g := game.New(game.Options{
		Config: cfg,
		Layout: layout,
		Input:  src,
		Camera: cam,
		Hunger: engine,
		Log:    log,
	})

	// 6. Start loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	frame := cfg.Loop.FrameStep()
	printSection("running")
	printItem(markRun, "frame %s, fixed %s", frame, cfg.Loop.FixedStep())
	if cfg.Loop.RunFor > 0 {
		printItem(markRun, "stopping after %s of simulated time", cfg.Loop.RunFor)
	}
	fmt.Println()

	l := &loop{game: g, hud: panels, log: log, cfg: cfg.Loop}
	if !cfg.Loop.Realtime {
		return l.fast(shutdownCh)
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if l.step(frame) {
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			l.summary()
			return nil
		}
	}
}

type loop struct {
	game       *game.Game
	hud        *hud.HUD
	log        *zap.Logger
	cfg        config.LoopConfig
	nextStatus time.Duration
}

// fast advances without waiting on the wall clock.
func (l *loop) fast(shutdownCh <-chan os.Signal) error {
	frame := l.cfg.FrameStep()
	for {
		select {
		case sig := <-shutdownCh:
			l.log.Info("shutdown signal", zap.String("signal", sig.String()))
			l.summary()
			return nil
		default:
		}
		if l.step(frame) {
			return nil
		}
	}
}

// step advances one frame and reports whether the run is over.
func (l *loop) step(frame time.Duration) bool {
	l.game.Advance(frame)
	now := l.game.Now()
	if l.cfg.StatusEvery > 0 && now >= l.nextStatus {
		l.nextStatus = now + l.cfg.StatusEvery
		l.status()
	}
	if l.cfg.RunFor > 0 && now >= l.cfg.RunFor {
		l.summary()
		return true
	}
	return false
}

func (l *loop) status() {
	st := l.game.Status()
	p := l.hud.Render(l.game.State(), st, false)
	l.log.Info(strings.ReplaceAll(p.Status, "\n", " "),
		zap.Duration("t", l.game.Now()),
		zap.Stringer("state", l.game.State()),
		zap.Int("on_ship", st.AgentsOnShip),
	)
	for _, a := range l.game.World().Agents() {
		l.log.Debug("agent",
			zap.Stringer("id", a.ID),
			zap.Float64("hunger", math.Round(a.Hunger*10)/10),
			zap.Bool("goal", a.HasGoal),
			zap.Bool("carrying", a.Carrying),
			zap.Bool("dead", a.Dead),
		)
	}
}

func (l *loop) summary() {
	run, dropped := l.game.Ticks()
	st := l.game.Status()
	t := l.game.Tally()
	l.log.Info("simulation stopped",
		zap.Duration("t", l.game.Now()),
		zap.Int("round", l.game.Round()),
		zap.Uint64("ticks", run),
		zap.Uint64("dropped_ticks", dropped),
		zap.Int("survivors", st.Survivors),
		zap.Int("logs_collected", st.LogsCollected),
		zap.Int("pickups", t.Pickups),
		zap.Int("feeds", t.Feeds),
		zap.Int("abandoned_goals", t.Abandons),
		zap.Int("tiles_dropped", t.TilesDropped),
	)
}

// startAt presses restart once, on the first poll at or after at, so a run
// without an input script leaves the start screen by itself. Presses during
// loading are ignored, so at must fall after the first frame.
func startAt(at time.Duration) input.Source {
	pressed := false
	return input.SourceFunc(func(now time.Duration) input.Snapshot {
		if pressed || now < at {
			return input.Snapshot{}
		}
		pressed = true
		return input.Snapshot{Restart: true}
	})
}
