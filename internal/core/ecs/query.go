package ecs

// Each2 iterates over entities that have both component A and B, in the
// iteration order of the first store.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	for _, id := range sa.IDs() {
		a, ok := sa.Get(id)
		if !ok {
			continue
		}
		if b, ok := sb.Get(id); ok {
			fn(id, a, b)
		}
	}
}

// Count returns how many entries of s satisfy pred.
func Count[T any](s *Store[T], pred func(EntityID, *T) bool) int {
	n := 0
	for i, id := range s.ids {
		if pred(id, s.data[i]) {
			n++
		}
	}
	return n
}

// First returns the first entity (in iteration order) of s satisfying pred.
func First[T any](s *Store[T], pred func(EntityID, *T) bool) (EntityID, *T, bool) {
	for i, id := range s.ids {
		if pred(id, s.data[i]) {
			return id, s.data[i], true
		}
	}
	return 0, nil, false
}
