// README: In-memory driver registry with deterministic iteration order.
package driver

import "rideshare/internal/types"

// Store holds the fleet, keyed by ID. Iteration follows insertion order so
// "first candidate wins" tie-breaking in dispatch is deterministic.
type Store struct {
	byID  map[types.ID]*Driver
	order []types.ID
}

func NewStore() *Store {
	return &Store{byID: make(map[types.ID]*Driver)}
}

func (s *Store) Put(d *Driver) {
	if _, ok := s.byID[d.ID]; !ok {
		s.order = append(s.order, d.ID)
	}
	s.byID[d.ID] = d
}

func (s *Store) Get(id types.ID) (*Driver, bool) {
	d, ok := s.byID[id]
	return d, ok
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

// IDs returns a copy of all driver IDs in insertion order.
func (s *Store) IDs() []types.ID {
	return append([]types.ID(nil), s.order...)
}

// All returns all drivers in insertion order.
func (s *Store) All() []*Driver {
	out := make([]*Driver, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Available returns all drivers that can take an assignment, in insertion
// order.
func (s *Store) Available() []*Driver {
	var out []*Driver
	for _, id := range s.order {
		if d := s.byID[id]; d.Available() {
			out = append(out, d)
		}
	}
	return out
}

// AvailableInZone returns available drivers currently in the zone, in
// insertion order.
func (s *Store) AvailableInZone(zone string) []*Driver {
	var out []*Driver
	for _, id := range s.order {
		if d := s.byID[id]; d.Zone == zone && d.Available() {
			out = append(out, d)
		}
	}
	return out
}

// InZone returns all drivers currently in the zone regardless of status.
func (s *Store) InZone(zone string) []*Driver {
	var out []*Driver
	for _, id := range s.order {
		if d := s.byID[id]; d.Zone == zone {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) Len() int { return len(s.order) }
