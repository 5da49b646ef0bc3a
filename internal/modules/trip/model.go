// README: Trip aggregate with its lifecycle state machine and metrics.
package trip

import (
	"errors"
	"fmt"
	"time"

	"rideshare/internal/modules/pricing"
	"rideshare/internal/types"
)

type State string

const (
	StateRequested State = "requested"
	StateAssigned  State = "assigned"
	StateOngoing   State = "ongoing"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotFound          = errors.New("trip not found")
)

// AllowedTransitions represents the trip state flow (diagram) as code.
// COMPLETED and CANCELLED are terminal.
var AllowedTransitions = map[State][]State{
	StateRequested: {StateAssigned, StateCancelled},
	StateAssigned:  {StateOngoing, StateCancelled},
	StateOngoing:   {StateCompleted},
}

func CanTransition(from, to State) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StateChange is one entry of a trip's transition history.
type StateChange struct {
	State State
	At    time.Time
}

// Trip is a ride through its lifecycle. Distance, cost, and path are
// populated on assignment and immutable afterwards except through rollback.
type Trip struct {
	ID          types.ID
	RiderID     types.ID
	DriverID    types.ID // empty until assigned
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

// New creates a trip in REQUESTED state. The cross-zone flag is computed
// once here and never recomputed.
func New(id, riderID, pickup, dropoff types.ID, pickupZone, dropoffZone string) *Trip {
	now := time.Now()
	return &Trip{
		ID:          id,
		RiderID:     riderID,
		Pickup:      pickup,
		Dropoff:     dropoff,
		PickupZone:  pickupZone,
		DropoffZone: dropoffZone,
		State:       StateRequested,
		History:     []StateChange{{State: StateRequested, At: now}},
		CrossZone:   pickupZone != dropoffZone,
		CreatedAt:   now,
	}
}

func (t *Trip) transition(to State) error {
	if !CanTransition(t.State, to) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, t.State, to)
	}
	t.State = to
	t.History = append(t.History, StateChange{State: to, At: time.Now()})
	return nil
}

// AssignDriver moves the trip to ASSIGNED and commits the route: driver,
// distance, path, estimated duration, and fare.
func (t *Trip) AssignDriver(driverID types.ID, distance float64, path []types.ID) error {
	if err := t.transition(StateAssigned); err != nil {
		return err
	}
	now := time.Now()
	t.DriverID = driverID
	t.Distance = distance
	t.Path = path
	t.AssignedAt = &now
	t.EstimatedMinutes = pricing.EstimateMinutes(distance)
	t.Cost = pricing.Fare(distance, t.CrossZone)
	return nil
}

// Start moves the trip to ONGOING (driver picked up the rider).
func (t *Trip) Start() error {
	if err := t.transition(StateOngoing); err != nil {
		return err
	}
	now := time.Now()
	t.StartedAt = &now
	return nil
}

// Complete moves the trip to COMPLETED. When actualMinutes is nil, the
// previously estimated duration is recorded instead.
func (t *Trip) Complete(actualMinutes *float64) error {
	if err := t.transition(StateCompleted); err != nil {
		return err
	}
	now := time.Now()
	t.CompletedAt = &now
	if actualMinutes != nil {
		t.ActualMinutes = *actualMinutes
	} else {
		t.ActualMinutes = t.EstimatedMinutes
	}
	return nil
}

// Cancel moves the trip to CANCELLED; only legal from REQUESTED or ASSIGNED.
func (t *Trip) Cancel() error {
	if err := t.transition(StateCancelled); err != nil {
		return err
	}
	now := time.Now()
	t.CancelledAt = &now
	return nil
}

// Terminal reports whether the trip reached COMPLETED or CANCELLED.
func (t *Trip) Terminal() bool {
	return t.State == StateCompleted || t.State == StateCancelled
}
