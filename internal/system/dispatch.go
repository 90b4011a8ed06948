package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
)

// DispatchSystem delivers the events emitted since the previous frame.
// Handlers see them one frame late, after every system has run.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
