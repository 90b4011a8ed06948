package world

import (
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// Status is the round summary shown by the HUD. It is computed by scanning
// the store on every call, never cached.
type Status struct {
	Survivors     int // agents not dead
	AgentsOnShip  int
	LogsCollected int // logs on the ship
	LogsTotal     int
	AllOnShip     bool // every survivor and every log is on the ship
	LostAll       bool
}

// Status scans the store.
func (s *State) Status() Status {
	var st Status
	s.EachAgent(func(id ecs.EntityID, _ *component.Hunger) {
		if s.Deads.Has(id) {
			return
		}
		st.Survivors++
		if p, ok := s.Phys.Position(id); ok && s.ShipZone.Contains(p) {
			st.AgentsOnShip++
		}
	})
	s.Caps.Each(func(id ecs.EntityID, c *component.Caps) {
		if !c.Log || !s.Alive(id) {
			return
		}
		st.LogsTotal++
		if p, ok := s.Phys.Position(id); ok && s.ShipZone.Contains(p) {
			st.LogsCollected++
		}
	})
	st.LostAll = st.Survivors == 0
	st.AllOnShip = !st.LostAll && st.AgentsOnShip == st.Survivors && st.LogsCollected == st.LogsTotal
	return st
}

// AgentView is the per-agent state exposed to presentation layers.
type AgentView struct {
	ID        ecs.EntityID
	Hunger    float64
	Picked    bool
	Dead      bool
	Carrying  bool
	HasGoal   bool
	Highlight component.HighlightMode
}

// Agents returns a view of every live agent in spawn order.
func (s *State) Agents() []AgentView {
	out := make([]AgentView, 0, s.Hungers.Len())
	s.EachAgent(func(id ecs.EntityID, h *component.Hunger) {
		v := AgentView{
			ID:       id,
			Hunger:   h.Percentage,
			Picked:   s.Picks.Has(id),
			Dead:     s.Deads.Has(id),
			Carrying: s.Carryings.Has(id),
			HasGoal:  s.Goals.Has(id),
		}
		if hl, ok := s.Highlights.Get(id); ok {
			v.Highlight = hl.Mode
		}
		out = append(out, v)
	})
	return out
}
