// README: Operation records and before-state snapshots for undo.
package rollback

import (
	"time"

	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/rider"
	"rideshare/internal/modules/trip"
	"rideshare/internal/types"
)

// OperationType tags what kind of mutation an operation record covers.
type OperationType string

const (
	OpCreateDriver         OperationType = "create_driver"
	OpCreateRider          OperationType = "create_rider"
	OpRequestTrip          OperationType = "request_trip"
	OpAssignTrip           OperationType = "assign_trip"
	OpStartTrip            OperationType = "start_trip"
	OpCompleteTrip         OperationType = "complete_trip"
	OpCancelTrip           OperationType = "cancel_trip"
	OpUpdateDriverLocation OperationType = "update_driver_location"
	OpDriverOffline        OperationType = "driver_offline"
	OpDriverOnline         OperationType = "driver_online"
)

// EntityKind names the collection a created entity belongs to.
type EntityKind string

const (
	KindDriver EntityKind = "driver"
	KindRider  EntityKind = "rider"
	KindTrip   EntityKind = "trip"
)

// SystemSnapshot is the before-image attached to an operation record: deep
// copies of the affected entities plus the full set of entity IDs that
// existed at log time. The ID sets are what make deletion detection and
// resurrection possible on rollback.
type SystemSnapshot struct {
	Drivers map[types.ID]driver.Snapshot
	Riders  map[types.ID]rider.Snapshot
	Trips   map[types.ID]trip.Snapshot

	ExistingDrivers []types.ID
	ExistingRiders  []types.ID
	ExistingTrips   []types.ID
}

// Operation is one entry of the undo log. It carries everything needed to
// reverse the mutation it precedes; the manager never interprets the type
// beyond the created-entity bookkeeping.
type Operation struct {
	ID          types.ID
	Type        OperationType
	At          time.Time
	Description string

	AffectedDrivers []types.ID
	AffectedRiders  []types.ID
	AffectedTrips   []types.ID

	CreatedID   types.ID // set for creation operations
	CreatedKind EntityKind

	Before SystemSnapshot
}
