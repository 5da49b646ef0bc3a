// README: Dispatch engine: zone-aware driver selection and trip estimates.
package dispatch

import (
	"math"

	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/pricing"
	"rideshare/internal/modules/trip"
	"rideshare/internal/roadnet"
	"rideshare/internal/types"
)

// Engine selects drivers for pickups over the shared road network and
// driver registry. It holds no state of its own.
type Engine struct {
	net     *roadnet.Network
	drivers *driver.Store
}

func NewEngine(net *roadnet.Network, drivers *driver.Store) *Engine {
	return &Engine{net: net, drivers: drivers}
}

// Candidate is the outcome of a driver search: the chosen driver, the raw
// (unpenalized) approach distance to the pickup, and whether the driver
// comes from another zone.
type Candidate struct {
	Driver    *driver.Driver
	Distance  float64
	CrossZone bool
}

// Estimate is a read-only projection of a potential trip.
type Estimate struct {
	Distance         float64
	EstimatedMinutes float64
	Cost             float64
	CrossZone        bool
	Path             []types.ID
	DriverAvailable  bool
	DriverETA        *float64 // minutes, nil when no driver is available
}

// FindBestDriver picks the best available driver for a pickup location.
//
// Same-zone availability is a hard preference: any available driver in the
// pickup's zone beats every out-of-zone driver, no matter the distance gap.
// Only when the pickup zone is empty does the search widen to all available
// drivers, ranked by distance scaled with the cross-zone multiplier; the
// penalty biases ranking toward closer drivers but the returned distance is
// always the raw one. Ties keep the first driver in registry order.
//
// Returns nil when the location is unknown or no driver is available.
func (e *Engine) FindBestDriver(pickup types.ID) *Candidate {
	pickupZone, ok := e.net.Zone(pickup)
	if !ok {
		return nil
	}

	var best *driver.Driver
	bestDistance := math.Inf(1)

	for _, d := range e.drivers.AvailableInZone(pickupZone) {
		dist, err := e.net.Distance(d.Location, pickup)
		if err != nil {
			continue
		}
		if dist < bestDistance {
			bestDistance = dist
			best = d
		}
	}
	if best != nil {
		return &Candidate{Driver: best, Distance: bestDistance, CrossZone: false}
	}

	for _, d := range e.drivers.Available() {
		dist, err := e.net.Distance(d.Location, pickup)
		if err != nil {
			continue
		}
		// Effective distance for ranking only; unreachable drivers stay
		// at +Inf and are never selected.
		effective := dist * pricing.CrossZoneMultiplier
		if effective < bestDistance {
			bestDistance = effective
			best = d
		}
	}
	if best == nil {
		return nil
	}
	actual, err := e.net.Distance(best.Location, pickup)
	if err != nil {
		return nil
	}
	return &Candidate{Driver: best, Distance: actual, CrossZone: true}
}

// AssignDriverToTrip finds the best driver for the trip's pickup and commits
// the assignment: the driver goes BUSY and the trip moves to ASSIGNED with
// the pickup→dropoff route as its distance and path. Returns (nil, nil)
// without mutating anything when no driver is available or no route exists.
func (e *Engine) AssignDriverToTrip(t *trip.Trip) (*driver.Driver, error) {
	cand := e.FindBestDriver(t.Pickup)
	if cand == nil {
		return nil, nil
	}

	path, distance, err := e.net.ShortestPath(t.Pickup, t.Dropoff)
	if err != nil {
		return nil, err
	}
	if math.IsInf(distance, 1) {
		return nil, nil
	}

	if err := cand.Driver.AssignTrip(t.ID); err != nil {
		return nil, err
	}
	if err := t.AssignDriver(cand.Driver.ID, distance, path); err != nil {
		cand.Driver.CancelCurrentTrip()
		return nil, err
	}
	return cand.Driver, nil
}

// TripEstimate projects route, fare, duration, and driver ETA for a
// potential trip without mutating anything. Returns nil when either
// location is unknown or no route exists.
func (e *Engine) TripEstimate(pickup, dropoff types.ID) *Estimate {
	pickupZone, ok := e.net.Zone(pickup)
	if !ok {
		return nil
	}
	dropoffZone, ok := e.net.Zone(dropoff)
	if !ok {
		return nil
	}

	path, distance, err := e.net.ShortestPath(pickup, dropoff)
	if err != nil || math.IsInf(distance, 1) {
		return nil
	}

	crossZone := pickupZone != dropoffZone
	est := &Estimate{
		Distance:         pricing.Round2(distance),
		EstimatedMinutes: pricing.Round1(pricing.EstimateMinutes(distance)),
		Cost:             pricing.Fare(distance, crossZone),
		CrossZone:        crossZone,
		Path:             path,
	}
	if cand := e.FindBestDriver(pickup); cand != nil {
		est.DriverAvailable = true
		eta := pricing.Round1(pricing.EstimateMinutes(cand.Distance))
		est.DriverETA = &eta
	}
	return est
}

// UpdateDriverLocation relocates a driver, refreshing its zone tag. Returns
// false when the driver or the location is unknown.
func (e *Engine) UpdateDriverLocation(driverID, location types.ID) bool {
	d, ok := e.drivers.Get(driverID)
	if !ok {
		return false
	}
	zone, ok := e.net.Zone(location)
	if !ok {
		return false
	}
	d.UpdateLocation(location, zone)
	return true
}

// ZoneStats counts drivers in one zone by status.
type ZoneStats struct {
	Total     int
	Available int
	Busy      int
	Offline   int
}

// ZoneStatistics reports the driver distribution across all zones of the
// network.
func (e *Engine) ZoneStatistics() map[string]ZoneStats {
	stats := make(map[string]ZoneStats, len(e.net.Zones()))
	for _, zone := range e.net.Zones() {
		var zs ZoneStats
		for _, d := range e.drivers.InZone(zone) {
			zs.Total++
			switch d.Status {
			case driver.StatusAvailable:
				zs.Available++
			case driver.StatusBusy:
				zs.Busy++
			case driver.StatusOffline:
				zs.Offline++
			}
		}
		stats[zone] = zs
	}
	return stats
}
