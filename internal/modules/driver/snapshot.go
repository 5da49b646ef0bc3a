// README: Before-image snapshots of drivers for the rollback log.
package driver

import "rideshare/internal/types"

// Snapshot is an independent copy of a driver's field values.
type Snapshot struct {
	ID       types.ID
	Name     string
	Location types.ID
	Zone     string
	Status   Status

	TotalTrips    int
	TotalDistance float64
	ActiveMinutes float64
	IdleMinutes   float64

	CurrentTripID types.ID
}

func (d *Driver) Snapshot() Snapshot {
	return Snapshot{
		ID:            d.ID,
		Name:          d.Name,
		Location:      d.Location,
		Zone:          d.Zone,
		Status:        d.Status,
		TotalTrips:    d.TotalTrips,
		TotalDistance: d.TotalDistance,
		ActiveMinutes: d.ActiveMinutes,
		IdleMinutes:   d.IdleMinutes,
		CurrentTripID: d.CurrentTripID,
	}
}

// Restore overwrites the driver's live field values with the snapshot's.
func (d *Driver) Restore(s Snapshot) {
	d.Name = s.Name
	d.Location = s.Location
	d.Zone = s.Zone
	d.Status = s.Status
	d.TotalTrips = s.TotalTrips
	d.TotalDistance = s.TotalDistance
	d.ActiveMinutes = s.ActiveMinutes
	d.IdleMinutes = s.IdleMinutes
	d.CurrentTripID = s.CurrentTripID
}

// FromSnapshot reconstructs a deleted driver from its before-image.
func FromSnapshot(s Snapshot) *Driver {
	d := New(s.ID, s.Name, s.Location, s.Zone)
	d.Restore(s)
	return d
}
