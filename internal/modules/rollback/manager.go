// README: Memento-based undo manager over the shared entity stores.
package rollback

import (
	"fmt"
	"time"

	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/rider"
	"rideshare/internal/modules/trip"
	"rideshare/internal/types"
)

// DefaultCapacity bounds the operation log unless the caller overrides it.
const DefaultCapacity = 100

// Manager records operations with before-state snapshots and can undo the
// last K of them. It is a generic memento mechanism: restoring snapshots
// and reconciling the existed-then/exists-now ID sets is all it ever does,
// with no per-operation inverse logic.
type Manager struct {
	log *opLog
	seq int

	drivers *driver.Store
	riders  *rider.Store
	trips   *trip.Store
}

// NewManager wires the manager to the live entity stores. capacity <= 0
// selects DefaultCapacity.
func NewManager(capacity int, drivers *driver.Store, riders *rider.Store, trips *trip.Store) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		log:     newOpLog(capacity),
		drivers: drivers,
		riders:  riders,
		trips:   trips,
	}
}

// Entry describes an operation about to be applied. Affected IDs name the
// entities whose field values the mutation may touch; CreatedID/CreatedKind
// are set when the operation brings a new entity into existence.
type Entry struct {
	Type        OperationType
	Description string

	Drivers []types.ID
	Riders  []types.ID
	Trips   []types.ID

	CreatedID   types.ID
	CreatedKind EntityKind
}

// Log records an operation. It MUST be called before the mutation is
// applied: the snapshot it takes is the before-image rollback restores.
func (m *Manager) Log(e Entry) types.ID {
	m.seq++
	op := Operation{
		ID:              types.ID(fmt.Sprintf("OP-%06d", m.seq)),
		Type:            e.Type,
		At:              time.Now(),
		Description:     e.Description,
		AffectedDrivers: append([]types.ID(nil), e.Drivers...),
		AffectedRiders:  append([]types.ID(nil), e.Riders...),
		AffectedTrips:   append([]types.ID(nil), e.Trips...),
		CreatedID:       e.CreatedID,
		CreatedKind:     e.CreatedKind,
		Before:          m.snapshot(e),
	}
	m.log.push(op)
	return op.ID
}

func (m *Manager) snapshot(e Entry) SystemSnapshot {
	s := SystemSnapshot{
		Drivers:         make(map[types.ID]driver.Snapshot, len(e.Drivers)),
		Riders:          make(map[types.ID]rider.Snapshot, len(e.Riders)),
		Trips:           make(map[types.ID]trip.Snapshot, len(e.Trips)),
		ExistingDrivers: m.drivers.IDs(),
		ExistingRiders:  m.riders.IDs(),
		ExistingTrips:   m.trips.IDs(),
	}
	for _, id := range e.Drivers {
		if d, ok := m.drivers.Get(id); ok {
			s.Drivers[id] = d.Snapshot()
		}
	}
	for _, id := range e.Riders {
		if r, ok := m.riders.Get(id); ok {
			s.Riders[id] = r.Snapshot()
		}
	}
	for _, id := range e.Trips {
		if t, ok := m.trips.Get(id); ok {
			s.Trips[id] = t.Snapshot()
		}
	}
	return s
}

// RollbackLast undoes the most recent logged operation and returns its
// record, or nil when the log is empty. An empty log is not an error.
func (m *Manager) RollbackLast() *Operation {
	op, ok := m.log.pop()
	if !ok {
		return nil
	}
	m.apply(op)
	return &op
}

// RollbackK undoes up to k operations, most recent first, stopping early
// when the log runs out.
func (m *Manager) RollbackK(k int) []Operation {
	var undone []Operation
	for i := 0; i < k; i++ {
		op := m.RollbackLast()
		if op == nil {
			break
		}
		undone = append(undone, *op)
	}
	return undone
}

// apply reverses one operation: delete what it created, restore every
// snapshotted entity that is still alive, then resurrect entities that
// existed at log time but have since vanished.
func (m *Manager) apply(op Operation) {
	if op.CreatedID != "" {
		switch op.CreatedKind {
		case KindDriver:
			m.drivers.Delete(op.CreatedID)
		case KindRider:
			m.riders.Delete(op.CreatedID)
		case KindTrip:
			m.trips.Delete(op.CreatedID)
		}
	}

	for id, snap := range op.Before.Drivers {
		if d, ok := m.drivers.Get(id); ok {
			d.Restore(snap)
		}
	}
	for id, snap := range op.Before.Riders {
		if r, ok := m.riders.Get(id); ok {
			r.Restore(snap)
		}
	}
	for id, snap := range op.Before.Trips {
		if t, ok := m.trips.Get(id); ok {
			t.Restore(snap)
		}
	}

	for _, id := range op.Before.ExistingDrivers {
		if _, ok := m.drivers.Get(id); ok {
			continue
		}
		if snap, ok := op.Before.Drivers[id]; ok {
			m.drivers.Put(driver.FromSnapshot(snap))
		}
	}
	for _, id := range op.Before.ExistingRiders {
		if _, ok := m.riders.Get(id); ok {
			continue
		}
		if snap, ok := op.Before.Riders[id]; ok {
			m.riders.Put(rider.FromSnapshot(snap))
		}
	}
	for _, id := range op.Before.ExistingTrips {
		if _, ok := m.trips.Get(id); ok {
			continue
		}
		if snap, ok := op.Before.Trips[id]; ok {
			m.trips.Put(trip.FromSnapshot(snap))
		}
	}
}

// CanRollback reports whether any operation is available to undo.
func (m *Manager) CanRollback() bool {
	return m.log.len() > 0
}

// OperationCount returns how many operations the log currently holds,
// which is the undo horizon after any eviction.
func (m *Manager) OperationCount() int {
	return m.log.len()
}

// History returns up to n operation records, most recent first, without
// undoing anything.
func (m *Manager) History(n int) []Operation {
	return m.log.recent(n)
}
