// README: In-memory trip collection with deterministic iteration order.
package trip

import "rideshare/internal/types"

// Store holds all trips, keyed by ID. Iteration follows insertion order so
// scans behave the same run to run, which the dispatch tie-breaking and the
// rollback log rely on.
type Store struct {
	byID  map[types.ID]*Trip
	order []types.ID
}

func NewStore() *Store {
	return &Store{byID: make(map[types.ID]*Trip)}
}

func (s *Store) Put(t *Trip) {
	if _, ok := s.byID[t.ID]; !ok {
		s.order = append(s.order, t.ID)
	}
	s.byID[t.ID] = t
}

func (s *Store) Get(id types.ID) (*Trip, bool) {
	t, ok := s.byID[id]
	return t, ok
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

// IDs returns a copy of all trip IDs in insertion order.
func (s *Store) IDs() []types.ID {
	return append([]types.ID(nil), s.order...)
}

// All returns all trips in insertion order.
func (s *Store) All() []*Trip {
	out := make([]*Trip, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }
