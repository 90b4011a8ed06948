package game

import (
	"github.com/shmoopmanager/sim/internal/core/event"
	"go.uber.org/zap"
)

// Tally counts what happened in the current round. It is fed by bus
// subscriptions, so counts trail the simulation by one frame.
type Tally struct {
	Picks        int
	Releases     int
	Goals        int
	HungerGoals  int
	Arrivals     int
	Abandons     int
	Pickups      int
	Drops        int
	Feeds        int
	Deaths       int
	Revivals     int
	Despawns     int
	TilesDropped int
}

type outcome uint8

const (
	outcomeNone outcome = iota
	outcomeWon
	outcomeLost
)

func (g *Game) subscribe() {
	event.Subscribe(g.bus, func(event.AgentPicked) { g.tally.Picks++ })
	event.Subscribe(g.bus, func(event.AgentReleased) { g.tally.Releases++ })
	event.Subscribe(g.bus, func(e event.GoalAssigned) {
		g.tally.Goals++
		if e.Cause == event.CauseHunger {
			g.tally.HungerGoals++
		}
	})
	event.Subscribe(g.bus, func(event.GoalArrived) { g.tally.Arrivals++ })
	event.Subscribe(g.bus, func(event.GoalAbandoned) { g.tally.Abandons++ })
	event.Subscribe(g.bus, func(event.PickedUp) { g.tally.Pickups++ })
	event.Subscribe(g.bus, func(event.Dropped) { g.tally.Drops++ })
	event.Subscribe(g.bus, func(event.Fed) { g.tally.Feeds++ })
	event.Subscribe(g.bus, func(event.AgentDied) { g.tally.Deaths++ })
	event.Subscribe(g.bus, func(event.AgentRevived) { g.tally.Revivals++ })
	event.Subscribe(g.bus, func(event.Despawned) { g.tally.Despawns++ })
	event.Subscribe(g.bus, func(event.TileDropped) { g.tally.TilesDropped++ })
}

// checkOutcome logs when the round is won or lost. Either can be undone
// (an agent walks off the ship again), so each is logged on entry only.
func (g *Game) checkOutcome() {
	st := g.world.Status()
	next := outcomeNone
	switch {
	case st.LostAll:
		next = outcomeLost
	case st.AllOnShip:
		next = outcomeWon
	}
	if next == g.outcome {
		return
	}
	g.outcome = next
	switch next {
	case outcomeWon:
		g.log.Info("everyone is on the ship",
			zap.Int("round", g.round), zap.Int("agents", st.Survivors), zap.Int("logs", st.LogsCollected))
	case outcomeLost:
		g.log.Info("all agents lost", zap.Int("round", g.round), zap.Duration("at", g.now))
	}
}
