package system

import (
	"time"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
	"github.com/shmoopmanager/sim/internal/core/event"
	coresys "github.com/shmoopmanager/sim/internal/core/system"
	"go.uber.org/zap"
)

// SelectSystem turns pointer state into picks, releases and player goals,
// and rewrites highlights for the outline presenter. Frame cadence.
//
// Order within a frame:
//  1. highlights reset; a picked agent is released if the button is up
//  2. ray under the pointer
//  3. agent hit: hover when up, pick when held and nobody is picked
//  4. with a picked (or just released) agent: interactable hit targets it
//     (highlight while held, goal on release), drag surface hit sets a
//     destination on release
type SelectSystem struct {
	deps *Deps
}

func NewSelectSystem(deps *Deps) *SelectSystem {
	return &SelectSystem{deps: deps}
}

func (s *SelectSystem) Phase() coresys.Phase { return coresys.PhaseSelect }

func (s *SelectSystem) Update(_ time.Duration) {
	ws := s.deps.World
	held := s.deps.Pointer.Snap.SelectHeld

	picked, hasPicked := ws.PickedAgent()
	ws.Highlights.Each(func(id ecs.EntityID, h *component.Highlight) {
		if hasPicked && held && id == picked {
			h.Mode = component.HighlightPicking
			return
		}
		h.Mode = component.HighlightNone
	})
	if hasPicked && !held {
		ws.Unpick(picked)
		s.deps.Log.Debug("agent released", zap.Stringer("agent", picked))
	}

	hit, ok := s.deps.Pointer.Cast(ws.Phys, s.deps.Sim.RayMaxDistance)
	if !ok || !ws.Alive(hit.Entity) {
		return
	}

	if ws.IsAgent(hit.Entity) {
		switch {
		case !held:
			s.highlight(hit.Entity, component.HighlightHover)
		case !hasPicked:
			if ws.Pick(hit.Entity) {
				picked, hasPicked = hit.Entity, true
				s.highlight(hit.Entity, component.HighlightPicking)
				s.deps.Log.Debug("agent picked", zap.Stringer("agent", hit.Entity))
			}
		}
		return
	}

	if !hasPicked {
		return
	}
	caps, _ := ws.CapsOf(hit.Entity)
	switch {
	case caps.Interactable:
		if held {
			s.highlight(hit.Entity, component.HighlightTarget)
			return
		}
		pos, ok := ws.Phys.Position(hit.Entity)
		if !ok {
			return
		}
		ws.AssignGoal(picked, pos, hit.Entity, event.CausePlayer)
	case caps.DragSurface:
		if !held {
			ws.AssignGoal(picked, hit.Point, 0, event.CausePlayer)
		}
	}
}

func (s *SelectSystem) highlight(id ecs.EntityID, mode component.HighlightMode) {
	if h, ok := s.deps.World.Highlights.Get(id); ok {
		h.Mode = mode
	}
}
