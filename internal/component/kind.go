package component

// Kind is the closed set of entity variants in the arena.
type Kind uint8

const (
	KindAgent Kind = iota + 1
	KindItem
	KindGround
	KindShipFloor
)

func (k Kind) String() string {
	switch k {
	case KindAgent:
		return "agent"
	case KindItem:
		return "item"
	case KindGround:
		return "ground"
	case KindShipFloor:
		return "ship_floor"
	}
	return "unknown"
}

// Caps are orthogonal capability flags. Systems query capabilities, never kinds,
// except where a rule is explicitly about agents.
type Caps struct {
	Interactable bool
	CanBeCarried bool
	FoodStore    bool
	DragSurface  bool
	Log          bool // counts toward the collected-logs total when on the ship
	Restartable  bool // removed and respawned by a round reset
}
