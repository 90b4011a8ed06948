package input

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/data"
	"go.uber.org/zap"
)

// Script replays a data.InputScript. Aim points are projected through the
// camera once at construction.
type Script struct {
	steps  []scriptStep
	active int // index of the step in effect, -1 before the first
	log    *zap.Logger
}

type scriptStep struct {
	at      time.Duration
	snap    Snapshot
	restart bool
}

func NewScript(s *data.InputScript, cam *Camera, log *zap.Logger) *Script {
	sc := &Script{active: -1, log: log}
	for i, st := range s.Steps {
		step := scriptStep{at: st.At, restart: st.Restart}
		step.snap.SelectHeld = st.Hold
		switch {
		case st.Screen != nil:
			step.snap.Pointer = mgl64.Vec2{st.Screen[0], st.Screen[1]}
			step.snap.HasPointer = true
		case st.Aim != nil:
			p, ok := cam.WorldToViewport(data.Vec(*st.Aim))
			if !ok {
				log.Warn("scripted aim point is off screen",
					zap.Int("step", i), zap.Float64s("aim", st.Aim[:]))
				break
			}
			step.snap.Pointer = p
			step.snap.HasPointer = true
		}
		sc.steps = append(sc.steps, step)
	}
	return sc
}

// Poll returns the state of the latest step at or before now. A restart
// step reports Restart only on the first poll that reaches it.
func (s *Script) Poll(now time.Duration) Snapshot {
	idx := s.active
	for idx+1 < len(s.steps) && s.steps[idx+1].at <= now {
		idx++
	}
	if idx < 0 {
		return Snapshot{}
	}
	snap := s.steps[idx].snap
	if idx != s.active {
		for i := s.active + 1; i <= idx; i++ {
			if s.steps[i].restart {
				snap.Restart = true
			}
		}
		s.active = idx
	}
	return snap
}

// Done reports whether every step has been reached.
func (s *Script) Done() bool { return s.active == len(s.steps)-1 }
