// README: Driver aggregate with availability status and utilization metrics.
package driver

import (
	"errors"
	"fmt"

	"rideshare/internal/types"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusOffline   Status = "offline"
)

var (
	ErrNotFound     = errors.New("driver not found")
	ErrNotAvailable = errors.New("driver is not available")
	ErrOnTrip       = errors.New("driver cannot go offline while on a trip")
)

// Driver is a fleet member. Status is BUSY exactly when CurrentTripID is
// set.
type Driver struct {
	ID       types.ID
	Name     string
	Location types.ID
	Zone     string
	Status   Status

	TotalTrips    int
	TotalDistance float64
	ActiveMinutes float64
	IdleMinutes   float64

	CurrentTripID types.ID // empty when not on a trip
}

// New creates an available driver at the given location.
func New(id types.ID, name string, location types.ID, zone string) *Driver {
	return &Driver{
		ID:       id,
		Name:     name,
		Location: location,
		Zone:     zone,
		Status:   StatusAvailable,
	}
}

// Available reports whether the driver can take a new assignment.
func (d *Driver) Available() bool {
	return d.Status == StatusAvailable
}

// AssignTrip marks the driver busy on the given trip.
func (d *Driver) AssignTrip(tripID types.ID) error {
	if !d.Available() {
		return fmt.Errorf("%w: %s", ErrNotAvailable, d.ID)
	}
	d.Status = StatusBusy
	d.CurrentTripID = tripID
	return nil
}

// CompleteTrip releases the driver and accrues trip metrics.
func (d *Driver) CompleteTrip(distance, minutes float64) {
	d.Status = StatusAvailable
	d.CurrentTripID = ""
	d.TotalTrips++
	d.TotalDistance += distance
	d.ActiveMinutes += minutes
}

// CancelCurrentTrip releases the driver without accruing metrics.
func (d *Driver) CancelCurrentTrip() {
	d.Status = StatusAvailable
	d.CurrentTripID = ""
}

// UpdateLocation moves the driver to a new node and zone.
func (d *Driver) UpdateLocation(location types.ID, zone string) {
	d.Location = location
	d.Zone = zone
}

// GoOffline takes the driver out of rotation. Illegal mid-trip.
func (d *Driver) GoOffline() error {
	if d.CurrentTripID != "" {
		return fmt.Errorf("%w: %s", ErrOnTrip, d.ID)
	}
	d.Status = StatusOffline
	return nil
}

// GoOnline returns the driver to rotation.
func (d *Driver) GoOnline() {
	d.Status = StatusAvailable
}

// UtilizationRate is active time over total tracked time, in [0, 1].
func (d *Driver) UtilizationRate() float64 {
	total := d.ActiveMinutes + d.IdleMinutes
	if total == 0 {
		return 0
	}
	return d.ActiveMinutes / total
}

// AddIdleTime accrues minutes spent waiting between assignments.
func (d *Driver) AddIdleTime(minutes float64) {
	d.IdleMinutes += minutes
}
