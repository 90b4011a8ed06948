package system

import (
	"fmt"
	"sort"
	"time"
)

// Runner executes the systems of one cadence in phase order. Systems sharing
// a phase keep their registration order.
type Runner struct {
	cadence Cadence
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner(c Cadence) *Runner {
	return &Runner{
		cadence: c,
		systems: make([]System, 0, 8),
	}
}

// Register adds s. A system whose phase belongs to the other cadence is
// refused.
func (r *Runner) Register(s System) error {
	if p := s.Phase(); p.Cadence() != r.cadence {
		return fmt.Errorf("system in phase %s runs at %s cadence, runner is %s", p, p.Cadence(), r.cadence)
	}
	r.systems = append(r.systems, s)
	r.sorted = false
	return nil
}

// MustRegister is Register for wiring code where a refusal is a bug.
func (r *Runner) MustRegister(s System) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.ticks++
}

// Ticks returns how many times Tick has run.
func (r *Runner) Ticks() uint64 { return r.ticks }

// TickPhase runs only the systems of the given phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Phases lists the phase of every registered system in execution order.
func (r *Runner) Phases() []Phase {
	r.ensureSorted()
	out := make([]Phase, len(r.systems))
	for i, s := range r.systems {
		out[i] = s.Phase()
	}
	return out
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
