// README: Facade owning all collections; sequences snapshot-then-mutate.
package system

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"rideshare/internal/modules/dispatch"
	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/rider"
	"rideshare/internal/modules/rollback"
	"rideshare/internal/modules/trip"
	"rideshare/internal/observability"
	"rideshare/internal/roadnet"
	"rideshare/internal/types"
)

// System is the single orchestrator for one simulation instance. It owns
// the road network, the entity stores, the dispatch engine, and the
// rollback manager, and it is the only component allowed to mutate them.
// Every externally visible operation follows the same sequence: validate,
// log a before-snapshot, mutate.
//
// A System is not safe for concurrent use; callers that need one from
// multiple goroutines must treat each operation as one atomic unit behind
// their own mutex, or rollback ordering would be corrupted.
type System struct {
	net      *roadnet.Network
	drivers  *driver.Store
	riders   *rider.Store
	trips    *trip.Store
	dispatch *dispatch.Engine
	rollback *rollback.Manager
	log      *slog.Logger

	driverSeq int
	riderSeq  int
	tripSeq   int
}

// Options tunes a new System. Zero values select the defaults.
type Options struct {
	Logger           *slog.Logger
	RollbackCapacity int
}

// New builds a simulation instance over the given road network.
func New(net *roadnet.Network, opts Options) *System {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	drivers := driver.NewStore()
	riders := rider.NewStore()
	trips := trip.NewStore()
	return &System{
		net:      net,
		drivers:  drivers,
		riders:   riders,
		trips:    trips,
		dispatch: dispatch.NewEngine(net, drivers),
		rollback: rollback.NewManager(opts.RollbackCapacity, drivers, riders, trips),
		log:      logger,
	}
}

// Network returns the road network backing this instance.
func (s *System) Network() *roadnet.Network { return s.net }

// ShortestPath exposes routing to external callers.
func (s *System) ShortestPath(start, end types.ID) ([]types.ID, float64, error) {
	return s.net.ShortestPath(start, end)
}

// ──────────────────────── driver management ────────────────────────

// CreateDriver registers a new driver at the given location.
func (s *System) CreateDriver(name string, location types.ID) (*driver.Driver, error) {
	zone, ok := s.net.Zone(location)
	if !ok {
		return nil, fmt.Errorf("%w: %s", roadnet.ErrUnknownNode, location)
	}

	s.driverSeq++
	id := types.ID(fmt.Sprintf("D-%04d", s.driverSeq))

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpCreateDriver,
		Description: fmt.Sprintf("Create driver %s: %s at %s", id, name, location),
		CreatedID:   id,
		CreatedKind: rollback.KindDriver,
	})

	d := driver.New(id, name, location, zone)
	s.drivers.Put(d)
	s.log.Info("driver created", "driver", id, "location", location, "zone", zone)
	return d, nil
}

// Driver returns a driver by ID.
func (s *System) Driver(id types.ID) (*driver.Driver, bool) { return s.drivers.Get(id) }

// Drivers returns all drivers in creation order.
func (s *System) Drivers() []*driver.Driver { return s.drivers.All() }

// AvailableDrivers returns drivers that can take an assignment.
func (s *System) AvailableDrivers() []*driver.Driver { return s.drivers.Available() }

// UpdateDriverLocation relocates a driver. Returns false when the driver or
// the location is unknown; nothing is logged in that case.
func (s *System) UpdateDriverLocation(driverID, location types.ID) bool {
	if _, ok := s.drivers.Get(driverID); !ok {
		return false
	}
	if _, ok := s.net.Zone(location); !ok {
		return false
	}

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpUpdateDriverLocation,
		Description: fmt.Sprintf("Update driver %s location to %s", driverID, location),
		Drivers:     []types.ID{driverID},
	})
	return s.dispatch.UpdateDriverLocation(driverID, location)
}

// SetDriverOffline takes a driver out of rotation. Illegal while the
// driver is on a trip.
func (s *System) SetDriverOffline(driverID types.ID) error {
	d, ok := s.drivers.Get(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", driver.ErrNotFound, driverID)
	}
	if d.CurrentTripID != "" {
		return fmt.Errorf("%w: %s", driver.ErrOnTrip, driverID)
	}

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpDriverOffline,
		Description: fmt.Sprintf("Driver %s goes offline", driverID),
		Drivers:     []types.ID{driverID},
	})
	return d.GoOffline()
}

// SetDriverOnline returns a driver to rotation.
func (s *System) SetDriverOnline(driverID types.ID) error {
	d, ok := s.drivers.Get(driverID)
	if !ok {
		return fmt.Errorf("%w: %s", driver.ErrNotFound, driverID)
	}

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpDriverOnline,
		Description: fmt.Sprintf("Driver %s goes online", driverID),
		Drivers:     []types.ID{driverID},
	})
	d.GoOnline()
	return nil
}

// ──────────────────────── rider management ─────────────────────────

// CreateRider registers a new rider at the given location.
func (s *System) CreateRider(name string, location types.ID) (*rider.Rider, error) {
	if _, ok := s.net.Zone(location); !ok {
		return nil, fmt.Errorf("%w: %s", roadnet.ErrUnknownNode, location)
	}

	s.riderSeq++
	id := types.ID(fmt.Sprintf("R-%04d", s.riderSeq))

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpCreateRider,
		Description: fmt.Sprintf("Create rider %s: %s at %s", id, name, location),
		CreatedID:   id,
		CreatedKind: rollback.KindRider,
	})

	r := rider.New(id, name, location)
	s.riders.Put(r)
	s.log.Info("rider created", "rider", id, "location", location)
	return r, nil
}

// Rider returns a rider by ID.
func (s *System) Rider(id types.ID) (*rider.Rider, bool) { return s.riders.Get(id) }

// Riders returns all riders in creation order.
func (s *System) Riders() []*rider.Rider { return s.riders.All() }

// ──────────────────────── trip lifecycle ───────────────────────────

// RequestTrip opens a new trip for a rider. The rider must exist, must not
// have a trip in flight, and both locations must be on the network.
func (s *System) RequestTrip(riderID, pickup, dropoff types.ID) (*trip.Trip, error) {
	r, ok := s.riders.Get(riderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", rider.ErrNotFound, riderID)
	}
	if r.HasActiveTrip() {
		return nil, fmt.Errorf("%w: %s", rider.ErrActiveTrip, riderID)
	}
	pickupZone, ok := s.net.Zone(pickup)
	if !ok {
		return nil, fmt.Errorf("%w: %s", roadnet.ErrUnknownNode, pickup)
	}
	dropoffZone, ok := s.net.Zone(dropoff)
	if !ok {
		return nil, fmt.Errorf("%w: %s", roadnet.ErrUnknownNode, dropoff)
	}

	s.tripSeq++
	id := types.ID(fmt.Sprintf("T-%04d", s.tripSeq))

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpRequestTrip,
		Description: fmt.Sprintf("Request trip %s for rider %s", id, riderID),
		Riders:      []types.ID{riderID},
		CreatedID:   id,
		CreatedKind: rollback.KindTrip,
	})

	t := trip.New(id, riderID, pickup, dropoff, pickupZone, dropoffZone)
	s.trips.Put(t)
	if err := r.BeginTrip(id); err != nil {
		return nil, err
	}

	observability.TripsRequested.Inc()
	s.log.Info("trip requested", "trip", id, "rider", riderID, "pickup", pickup, "dropoff", dropoff)
	return t, nil
}

// AssignTrip matches the best available driver to a REQUESTED trip.
// A nil driver with a nil error means no driver was available or no route
// exists; both are valid outcomes, not failures.
func (s *System) AssignTrip(tripID types.ID) (*driver.Driver, error) {
	t, ok := s.trips.Get(tripID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", trip.ErrNotFound, tripID)
	}
	if t.State != trip.StateRequested {
		return nil, fmt.Errorf("%w: trip %s is not in requested state", trip.ErrInvalidTransition, tripID)
	}

	cand := s.dispatch.FindBestDriver(t.Pickup)
	if cand == nil {
		s.log.Info("no driver available", "trip", tripID)
		return nil, nil
	}

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpAssignTrip,
		Description: fmt.Sprintf("Assign driver %s to trip %s", cand.Driver.ID, tripID),
		Drivers:     []types.ID{cand.Driver.ID},
		Trips:       []types.ID{tripID},
	})

	d, err := s.dispatch.AssignDriverToTrip(t)
	if err != nil {
		return nil, err
	}
	if d == nil {
		s.log.Info("no route for trip", "trip", tripID)
		return nil, nil
	}

	observability.TripsAssigned.Inc()
	s.syncBusyGauge()
	s.log.Info("trip assigned", "trip", tripID, "driver", d.ID, "distance", t.Distance, "cross_zone", cand.CrossZone)
	return d, nil
}

// StartTrip moves an ASSIGNED trip to ONGOING.
func (s *System) StartTrip(tripID types.ID) error {
	t, ok := s.trips.Get(tripID)
	if !ok {
		return fmt.Errorf("%w: %s", trip.ErrNotFound, tripID)
	}
	if !trip.CanTransition(t.State, trip.StateOngoing) {
		return fmt.Errorf("%w: from %s to %s", trip.ErrInvalidTransition, t.State, trip.StateOngoing)
	}

	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpStartTrip,
		Description: fmt.Sprintf("Start trip %s", tripID),
		Trips:       []types.ID{tripID},
	})

	if err := t.Start(); err != nil {
		return err
	}
	s.log.Info("trip started", "trip", tripID)
	return nil
}

// CompleteTrip closes an ONGOING trip. The driver accrues metrics and moves
// to the drop-off, as does the rider. When actualMinutes is nil the
// estimate stands in for the recorded duration.
func (s *System) CompleteTrip(tripID types.ID, actualMinutes *float64) error {
	t, ok := s.trips.Get(tripID)
	if !ok {
		return fmt.Errorf("%w: %s", trip.ErrNotFound, tripID)
	}
	if !trip.CanTransition(t.State, trip.StateCompleted) {
		return fmt.Errorf("%w: from %s to %s", trip.ErrInvalidTransition, t.State, trip.StateCompleted)
	}

	var affectedDrivers []types.ID
	if t.DriverID != "" {
		affectedDrivers = []types.ID{t.DriverID}
	}
	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpCompleteTrip,
		Description: fmt.Sprintf("Complete trip %s", tripID),
		Drivers:     affectedDrivers,
		Riders:      []types.ID{t.RiderID},
		Trips:       []types.ID{tripID},
	})

	if err := t.Complete(actualMinutes); err != nil {
		return err
	}
	if d, ok := s.drivers.Get(t.DriverID); ok {
		d.CompleteTrip(t.Distance, t.ActualMinutes)
		d.UpdateLocation(t.Dropoff, t.DropoffZone)
	}
	if r, ok := s.riders.Get(t.RiderID); ok {
		r.CompleteTrip(tripID, t.Distance, t.Cost)
		r.UpdateLocation(t.Dropoff)
	}

	observability.TripsCompleted.Inc()
	s.syncBusyGauge()
	s.log.Info("trip completed", "trip", tripID, "cost", t.Cost, "minutes", t.ActualMinutes)
	return nil
}

// CancelTrip aborts a REQUESTED or ASSIGNED trip, releasing the driver and
// the rider.
func (s *System) CancelTrip(tripID types.ID) error {
	t, ok := s.trips.Get(tripID)
	if !ok {
		return fmt.Errorf("%w: %s", trip.ErrNotFound, tripID)
	}
	if !trip.CanTransition(t.State, trip.StateCancelled) {
		return fmt.Errorf("%w: from %s to %s", trip.ErrInvalidTransition, t.State, trip.StateCancelled)
	}

	var affectedDrivers []types.ID
	if t.DriverID != "" {
		affectedDrivers = []types.ID{t.DriverID}
	}
	s.rollback.Log(rollback.Entry{
		Type:        rollback.OpCancelTrip,
		Description: fmt.Sprintf("Cancel trip %s", tripID),
		Drivers:     affectedDrivers,
		Riders:      []types.ID{t.RiderID},
		Trips:       []types.ID{tripID},
	})

	if err := t.Cancel(); err != nil {
		return err
	}
	if d, ok := s.drivers.Get(t.DriverID); ok {
		d.CancelCurrentTrip()
	}
	if r, ok := s.riders.Get(t.RiderID); ok {
		r.CancelTrip()
	}

	observability.TripsCancelled.Inc()
	s.syncBusyGauge()
	s.log.Info("trip cancelled", "trip", tripID)
	return nil
}

// Trip returns a trip by ID.
func (s *System) Trip(id types.ID) (*trip.Trip, bool) { return s.trips.Get(id) }

// Trips returns all trips in creation order.
func (s *System) Trips() []*trip.Trip { return s.trips.All() }

// ActiveTrips returns all trips that have not reached a terminal state.
func (s *System) ActiveTrips() []*trip.Trip {
	var out []*trip.Trip
	for _, t := range s.trips.All() {
		if !t.Terminal() {
			out = append(out, t)
		}
	}
	return out
}

// TripEstimate projects a potential trip without mutating anything.
// Returns nil when either location is unknown or no route exists.
func (s *System) TripEstimate(pickup, dropoff types.ID) *dispatch.Estimate {
	return s.dispatch.TripEstimate(pickup, dropoff)
}

// ZoneStatistics reports driver distribution by zone.
func (s *System) ZoneStatistics() map[string]dispatch.ZoneStats {
	return s.dispatch.ZoneStatistics()
}

// ──────────────────────── rollback ─────────────────────────────────

// RollbackLast undoes the most recent operation. Returns nil when there is
// nothing to undo; an empty log is not an error.
func (s *System) RollbackLast() *rollback.Operation {
	op := s.rollback.RollbackLast()
	if op == nil {
		return nil
	}
	observability.Rollbacks.Inc()
	s.syncBusyGauge()
	s.log.Info("operation rolled back", "operation", op.ID, "type", op.Type)
	return op
}

// RollbackK undoes up to k operations, most recent first.
func (s *System) RollbackK(k int) []rollback.Operation {
	undone := s.rollback.RollbackK(k)
	observability.Rollbacks.Add(float64(len(undone)))
	s.syncBusyGauge()
	s.log.Info("operations rolled back", "count", len(undone))
	return undone
}

// CanRollback reports whether any operation is available to undo.
func (s *System) CanRollback() bool { return s.rollback.CanRollback() }

// OperationCount returns the current undo horizon.
func (s *System) OperationCount() int { return s.rollback.OperationCount() }

// History returns up to n recent operation records without undoing them.
func (s *System) History(n int) []rollback.Operation { return s.rollback.History(n) }

func (s *System) syncBusyGauge() {
	busy := 0
	for _, d := range s.drivers.All() {
		if d.Status == driver.StatusBusy {
			busy++
		}
	}
	observability.DriversBusy.Set(float64(busy))
}
