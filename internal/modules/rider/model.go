// README: Rider aggregate with trip history and spend tracking.
package rider

import (
	"errors"
	"fmt"

	"rideshare/internal/types"
)

var (
	ErrNotFound   = errors.New("rider not found")
	ErrActiveTrip = errors.New("rider already has an active trip")
)

// Rider is a customer. At most one active trip at a time.
type Rider struct {
	ID       types.ID
	Name     string
	Location types.ID

	TripHistory   []types.ID
	CurrentTripID types.ID // empty when no active trip

	TotalTrips    int
	TotalDistance float64
	TotalSpent    float64
}

// New creates a rider at the given location.
func New(id types.ID, name string, location types.ID) *Rider {
	return &Rider{ID: id, Name: name, Location: location}
}

// HasActiveTrip reports whether a trip is currently in flight for this
// rider.
func (r *Rider) HasActiveTrip() bool {
	return r.CurrentTripID != ""
}

// BeginTrip registers a newly requested trip as the rider's active trip.
func (r *Rider) BeginTrip(tripID types.ID) error {
	if r.HasActiveTrip() {
		return fmt.Errorf("%w: %s", ErrActiveTrip, r.ID)
	}
	r.CurrentTripID = tripID
	return nil
}

// CompleteTrip closes the active trip and accrues history and spend.
func (r *Rider) CompleteTrip(tripID types.ID, distance, cost float64) {
	r.TripHistory = append(r.TripHistory, tripID)
	r.CurrentTripID = ""
	r.TotalTrips++
	r.TotalDistance += distance
	r.TotalSpent += cost
}

// CancelTrip clears the active trip without accruing anything.
func (r *Rider) CancelTrip() {
	r.CurrentTripID = ""
}

// UpdateLocation moves the rider to a new node.
func (r *Rider) UpdateLocation(location types.ID) {
	r.Location = location
}
