package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tuning scripts.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// A missing directory is not an error: every hook has a Go fallback.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "agent"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromString builds an engine from inline source (tests, embedded hooks).
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HungerContext holds the inputs of one agent's hunger drain for one tick.
type HungerContext struct {
	Dt       float64 // seconds
	Carrying bool
	Rate     float64 // percent per second
	Penalty  float64 // multiplier while carrying
	Hunger   float64 // current percentage
}

// DefaultHungerDrain is the stock formula: Rate·Dt, multiplied by Penalty
// while carrying.
func DefaultHungerDrain(ctx HungerContext) float64 {
	d := ctx.Rate * ctx.Dt
	if ctx.Carrying {
		d *= ctx.Penalty
	}
	return d
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CalcHungerDrain calls Lua calc_hunger_drain(ctx). Falls back to
// DefaultHungerDrain when the hook is missing or fails, and when it returns
// anything but a finite, non-negative number.
func (e *Engine) CalcHungerDrain(ctx HungerContext) float64 {
	fn := e.vm.GetGlobal("calc_hunger_drain")
	if fn == lua.LNil {
		return DefaultHungerDrain(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("dt", lua.LNumber(ctx.Dt))
	t.RawSetString("carrying", lua.LBool(ctx.Carrying))
	t.RawSetString("rate", lua.LNumber(ctx.Rate))
	t.RawSetString("penalty", lua.LNumber(ctx.Penalty))
	t.RawSetString("hunger", lua.LNumber(ctx.Hunger))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_hunger_drain error", zap.Error(err))
		return DefaultHungerDrain(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_hunger_drain returned non-number", zap.String("type", result.Type().String()))
		return DefaultHungerDrain(ctx)
	}
	d := float64(n)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		e.log.Error("lua calc_hunger_drain returned invalid drain", zap.Float64("drain", d))
		return DefaultHungerDrain(ctx)
	}
	return d
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
