// README: In-memory rider registry with deterministic iteration order.
package rider

import "rideshare/internal/types"

// Store holds all riders, keyed by ID, iterating in insertion order.
type Store struct {
	byID  map[types.ID]*Rider
	order []types.ID
}

func NewStore() *Store {
	return &Store{byID: make(map[types.ID]*Rider)}
}

func (s *Store) Put(r *Rider) {
	if _, ok := s.byID[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.byID[r.ID] = r
}

func (s *Store) Get(id types.ID) (*Rider, bool) {
	r, ok := s.byID[id]
	return r, ok
}

func (s *Store) Delete(id types.ID) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// IDs returns a copy of all rider IDs in insertion order.
func (s *Store) IDs() []types.ID {
	return append([]types.ID(nil), s.order...)
}

// All returns all riders in insertion order.
func (s *Store) All() []*Rider {
	out := make([]*Rider, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }
