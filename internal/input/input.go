package input

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is the pointer and key state for one frame.
type Snapshot struct {
	Pointer    mgl64.Vec2 // viewport pixels, origin top-left
	HasPointer bool       // false while the cursor is outside the window
	SelectHeld bool
	Restart    bool // restart key went down this frame
}

// Source produces one snapshot per frame. now is the simulation time.
type Source interface {
	Poll(now time.Duration) Snapshot
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(now time.Duration) Snapshot

func (f SourceFunc) Poll(now time.Duration) Snapshot { return f(now) }

// Idle never points anywhere and never presses anything.
var Idle Source = SourceFunc(func(time.Duration) Snapshot { return Snapshot{} })
