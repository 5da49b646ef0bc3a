// README: Before-image snapshots of riders for the rollback log.
package rider

import "rideshare/internal/types"

// Snapshot is an independent copy of a rider's field values; the trip
// history slice is duplicated.
type Snapshot struct {
	ID       types.ID
	Name     string
	Location types.ID

	TripHistory   []types.ID
	CurrentTripID types.ID

	TotalTrips    int
	TotalDistance float64
	TotalSpent    float64
}

func (r *Rider) Snapshot() Snapshot {
	return Snapshot{
		ID:            r.ID,
		Name:          r.Name,
		Location:      r.Location,
		TripHistory:   append([]types.ID(nil), r.TripHistory...),
		CurrentTripID: r.CurrentTripID,
		TotalTrips:    r.TotalTrips,
		TotalDistance: r.TotalDistance,
		TotalSpent:    r.TotalSpent,
	}
}

// Restore overwrites the rider's live field values with the snapshot's.
func (r *Rider) Restore(s Snapshot) {
	r.Name = s.Name
	r.Location = s.Location
	r.TripHistory = append([]types.ID(nil), s.TripHistory...)
	r.CurrentTripID = s.CurrentTripID
	r.TotalTrips = s.TotalTrips
	r.TotalDistance = s.TotalDistance
	r.TotalSpent = s.TotalSpent
}

// FromSnapshot reconstructs a deleted rider from its before-image.
func FromSnapshot(s Snapshot) *Rider {
	r := New(s.ID, s.Name, s.Location)
	r.Restore(s)
	return r
}
