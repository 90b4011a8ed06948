package game

import (
	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/data"
	"github.com/shmoopmanager/sim/internal/physics"
	"go.uber.org/zap"
)

// spawnShip adds the ship parts. They survive round resets.
func (g *Game) spawnShip() {
	for _, part := range g.layout.Ship {
		g.world.Spawn(component.KindShipFloor, component.Caps{DragSurface: true}, physics.BodyDef{
			Type:        physics.Static,
			Position:    data.Vec(part.Position),
			HalfExtents: data.Vec(part.HalfExtents),
		})
	}
	g.log.Info("ship spawned", zap.String("layout", g.layout.Name), zap.Int("parts", len(g.layout.Ship)))
}

// reset clears the previous round and spawns the restartable contents.
func (g *Game) reset() {
	removed := g.world.ClearRestartables()
	g.world.ResetBounds()
	g.bus.Reset()
	g.hunger.ResetRound()
	g.shrink.ResetRound()
	g.acc = 0
	g.outcome = outcomeNone
	g.tally = Tally{}
	g.round++

	l := g.layout
	tiles := g.spawnGroup(component.KindGround, component.Caps{DragSurface: true, Restartable: true}, l.Ground, physics.Static, false)
	agents := g.spawnGroup(component.KindAgent, component.Caps{Restartable: true}, l.Agents, physics.Dynamic, true)
	logs := g.spawnGroup(component.KindItem, component.Caps{Interactable: true, CanBeCarried: true, Log: true, Restartable: true}, l.Logs, physics.Dynamic, false)
	for _, it := range l.Food.Items {
		g.world.Spawn(component.KindItem, component.Caps{
			Interactable: true,
			CanBeCarried: true,
			FoodStore:    it.Store,
			Restartable:  true,
		}, physics.BodyDef{
			Type:        physics.Dynamic,
			Position:    data.Vec(it.Position),
			HalfExtents: data.Vec(l.Food.HalfExtents),
			Mass:        l.Food.Mass,
		})
	}

	g.log.Info("round started",
		zap.Int("round", g.round),
		zap.Int("removed", removed),
		zap.Int("tiles", tiles),
		zap.Int("agents", agents),
		zap.Int("food", len(l.Food.Items)),
		zap.Int("logs", logs),
	)
}

func (g *Game) spawnGroup(kind component.Kind, caps component.Caps, grp data.SpawnGroup, bt physics.BodyType, lockTilt bool) int {
	for _, p := range grp.Spawns {
		g.world.Spawn(kind, caps, physics.BodyDef{
			Type:        bt,
			Position:    data.Vec(p),
			HalfExtents: data.Vec(grp.HalfExtents),
			Mass:        grp.Mass,
			LockTilt:    lockTilt,
		})
	}
	return len(grp.Spawns)
}
