package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
	Has(id EntityID) bool
}

// Registry is the list of stores an entity's components may live in.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{stores: make([]Removable, 0, 8)}
}

// Register creates a store for T owned by r.
func Register[T any](r *Registry) *Store[T] {
	s := NewStore[T]()
	r.stores = append(r.stores, s)
	return s
}

// RemoveAll drops id from every store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Holds counts the stores that still have a component for id.
func (r *Registry) Holds(id EntityID) int {
	n := 0
	for _, s := range r.stores {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// Store is a generic typed component store.
// Iteration follows insertion order, so every pass over a store visits
// entities in the same order on every run.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	data  []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 64),
		ids:   make([]EntityID, 0, 64),
		data:  make([]*T, 0, 64),
	}
}

// Set inserts or replaces the component of id. Replacing keeps the
// entity's iteration position.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.index, id)
	copy(s.ids[i:], s.ids[i+1:])
	copy(s.data[i:], s.data[i+1:])
	last := len(s.ids) - 1
	s.ids = s.ids[:last]
	s.data[last] = nil
	s.data = s.data[:last]
	for j := i; j < last; j++ {
		s.index[s.ids[j]] = j
	}
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the stored entity IDs in iteration order.
func (s *Store[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Each calls fn for every component in iteration order. fn may add or
// remove components (including the current one); entities removed during
// the pass are skipped and entities added during the pass are not visited.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.IDs() {
		if c, ok := s.Get(id); ok {
			fn(id, c)
		}
	}
}

// Clear drops every component.
func (s *Store[T]) Clear() {
	clear(s.index)
	clear(s.data)
	s.ids = s.ids[:0]
	s.data = s.data[:0]
}
