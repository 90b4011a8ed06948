package world

import (
	"errors"
	"fmt"

	"github.com/shmoopmanager/sim/internal/component"
	"github.com/shmoopmanager/sim/internal/core/ecs"
)

// CheckInvariants verifies the cross-system rules of the store and returns
// every violation found, joined. A non-nil result is a programming defect.
func (s *State) CheckInvariants() error {
	var errs []error

	if n := s.Picks.Len(); n > 1 {
		errs = append(errs, fmt.Errorf("%d agents picked", n))
	}
	s.Picks.Each(func(id ecs.EntityID, _ *component.Picked) {
		if s.Goals.Has(id) {
			errs = append(errs, fmt.Errorf("picked agent %s has a goal", id))
		}
	})
	s.Carryings.Each(func(id ecs.EntityID, c *component.Carrying) {
		j, ok := s.Phys.Joint(c.Joint)
		if !ok {
			errs = append(errs, fmt.Errorf("agent %s carries %s without a live joint", id, c.Target))
			return
		}
		if !(j.Entity1 == id && j.Entity2 == c.Target) && !(j.Entity1 == c.Target && j.Entity2 == id) {
			errs = append(errs, fmt.Errorf("agent %s joint %d links %s-%s", id, c.Joint, j.Entity1, j.Entity2))
		}
	})
	s.Goals.Each(func(id ecs.EntityID, g *component.Goal) {
		if g.Age < 0 {
			errs = append(errs, fmt.Errorf("agent %s goal age %f", id, g.Age))
		}
	})
	return errors.Join(errs...)
}
