package system

import "time"

// Phase defines execution ordering within a single tick. Fixed-cadence phases
// come first, frame-cadence phases after; a runner only ever holds systems of
// one cadence, the shared numbering just keeps the order in one place.
type Phase int

const (
	// Fixed cadence (physics rate).
	PhaseDrag     Phase = iota // 0: pointer drives the picked agent directly
	PhaseHunger                // 1: drain hunger, starving agents retarget food
	PhaseMovement              // 2: goal pursuit, arrival, joint release
	PhaseWander                // 3: idle agents get a random destination
	PhaseShrink                // 4: hazard timer drops the farthest tile
	PhasePhysics               // 5: integrate bodies, resolve contacts

	// Frame cadence (render rate).
	PhaseDispatch    // 6: deliver last frame's events
	PhaseGoalTimer   // 7: age active goals
	PhaseAbandon     // 8: clear stale goals
	PhaseSelect      // 9: pointer selection and release
	PhaseInteraction // 10: pickup and feeding on contact
	PhaseDeath       // 11: recompute dead flag
	PhaseDespawn     // 12: remove entities below the despawn depth
	PhaseCleanup     // 13: destroy queued entities
)

var phaseNames = [...]string{
	"drag", "hunger", "movement", "wander", "shrink", "physics",
	"dispatch", "goal_timer", "abandon", "select", "interaction", "death", "despawn", "cleanup",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Cadence is the clock that drives a phase.
type Cadence uint8

const (
	Fixed Cadence = iota // physics rate, constant dt
	Frame                // render rate, variable dt
)

func (c Cadence) String() string {
	if c == Fixed {
		return "fixed"
	}
	return "frame"
}

// Cadence reports which runner a phase belongs to.
func (p Phase) Cadence() Cadence {
	if p < PhaseDispatch {
		return Fixed
	}
	return Frame
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
