package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// GoalCause says which system assigned a goal.
type GoalCause uint8

const (
	CausePlayer GoalCause = iota
	CauseWander
	CauseHunger
)

func (c GoalCause) String() string {
	switch c {
	case CausePlayer:
		return "player"
	case CauseWander:
		return "wander"
	case CauseHunger:
		return "hunger"
	}
	return "unknown"
}

type AgentPicked struct {
	Agent ecs.EntityID
}

type AgentReleased struct {
	Agent ecs.EntityID
}

type GoalAssigned struct {
	Agent       ecs.EntityID
	Destination mgl64.Vec3
	Target      ecs.EntityID // zero when the goal is a plain destination
	Cause       GoalCause
}

type GoalArrived struct {
	Agent ecs.EntityID
}

type GoalAbandoned struct {
	Agent ecs.EntityID
	Age   float64
}

type PickedUp struct {
	Agent  ecs.EntityID
	Target ecs.EntityID
}

type Dropped struct {
	Agent  ecs.EntityID
	Target ecs.EntityID
}

type Fed struct {
	Agent ecs.EntityID
	Store ecs.EntityID
}

type AgentDied struct {
	Agent ecs.EntityID
}

type AgentRevived struct {
	Agent ecs.EntityID
}

type Despawned struct {
	Entity ecs.EntityID
	Depth  float64
}

type TileDropped struct {
	Tile     ecs.EntityID
	Distance float64
}
