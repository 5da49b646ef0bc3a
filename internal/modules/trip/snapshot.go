// README: Before-image snapshots of trips for the rollback log.
package trip

import (
	"time"

	"rideshare/internal/types"
)

// Snapshot is an independent copy of a trip's observable fields. Slices are
// duplicated so later live mutation cannot retroactively alter a stored
// snapshot.
type Snapshot struct {
	ID          types.ID
	RiderID     types.ID
	DriverID    types.ID
	Pickup      types.ID
	Dropoff     types.ID
	PickupZone  string
	DropoffZone string

	State   State
	History []StateChange

	Distance         float64
	EstimatedMinutes float64
	ActualMinutes    float64
	Cost             float64
	Path             []types.ID
	CrossZone        bool

	CreatedAt   time.Time
	AssignedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// Snapshot captures the trip's current field values.
func (t *Trip) Snapshot() Snapshot {
	return Snapshot{
		ID:               t.ID,
		RiderID:          t.RiderID,
		DriverID:         t.DriverID,
		Pickup:           t.Pickup,
		Dropoff:          t.Dropoff,
		PickupZone:       t.PickupZone,
		DropoffZone:      t.DropoffZone,
		State:            t.State,
		History:          append([]StateChange(nil), t.History...),
		Distance:         t.Distance,
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		Cost:             t.Cost,
		Path:             append([]types.ID(nil), t.Path...),
		CrossZone:        t.CrossZone,
		CreatedAt:        t.CreatedAt,
		AssignedAt:       copyTime(t.AssignedAt),
		StartedAt:        copyTime(t.StartedAt),
		CompletedAt:      copyTime(t.CompletedAt),
		CancelledAt:      copyTime(t.CancelledAt),
	}
}

// Restore overwrites the trip's live field values with the snapshot's.
func (t *Trip) Restore(s Snapshot) {
	t.RiderID = s.RiderID
	t.DriverID = s.DriverID
	t.Pickup = s.Pickup
	t.Dropoff = s.Dropoff
	t.PickupZone = s.PickupZone
	t.DropoffZone = s.DropoffZone
	t.State = s.State
	t.History = append([]StateChange(nil), s.History...)
	t.Distance = s.Distance
	t.EstimatedMinutes = s.EstimatedMinutes
	t.ActualMinutes = s.ActualMinutes
	t.Cost = s.Cost
	t.Path = append([]types.ID(nil), s.Path...)
	t.CrossZone = s.CrossZone
	t.CreatedAt = s.CreatedAt
	t.AssignedAt = copyTime(s.AssignedAt)
	t.StartedAt = copyTime(s.StartedAt)
	t.CompletedAt = copyTime(s.CompletedAt)
	t.CancelledAt = copyTime(s.CancelledAt)
}

// FromSnapshot reconstructs a deleted trip from its before-image.
func FromSnapshot(s Snapshot) *Trip {
	t := New(s.ID, s.RiderID, s.Pickup, s.Dropoff, s.PickupZone, s.DropoffZone)
	t.Restore(s)
	return t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
