// README: Aggregate reporting over trips, drivers, riders, and zones.
package system

import (
	"fmt"

	"rideshare/internal/modules/dispatch"
	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/pricing"
	"rideshare/internal/modules/trip"
	"rideshare/internal/types"
)

// Report is a point-in-time aggregate of the whole simulation. Rate and
// share fields are percentages in [0, 100], rounded to two decimals.
type Report struct {
	TotalTrips     int
	CompletedTrips int
	CancelledTrips int
	ActiveTrips    int
	// CompletionRate is the share of all trips that completed, as a
	// percentage. CancellationRate likewise for cancelled trips.
	CompletionRate   float64
	CancellationRate float64

	TotalDistance       float64
	AverageTripDistance float64
	TotalRevenue        float64
	CrossZoneTrips      int
	// CrossZoneShare is the percentage of completed trips that crossed a
	// zone boundary.
	CrossZoneShare float64

	TotalDrivers     int
	AvailableDrivers int
	BusyDrivers      int
	// AverageDriverUtilization is a fraction in [0, 1], not a percentage,
	// averaged over drivers that have seen any activity.
	AverageDriverUtilization float64

	TotalRiders int

	Zones map[string]dispatch.ZoneStats
}

// DriverReport summarizes one driver's lifetime activity. Earnings and the
// cancelled count come from the trip records, not the driver's own counters.
type DriverReport struct {
	DriverID        types.ID
	Name            string
	Status          driver.Status
	Location        types.ID
	Zone            string
	TotalTrips      int
	CancelledTrips  int
	TotalDistance   float64
	TotalEarnings   float64
	ActiveMinutes   float64
	IdleMinutes     float64
	UtilizationRate float64
}

// Analytics computes the current Report. Rates are zero when their
// denominators are, never NaN.
func (s *System) Analytics() Report {
	r := Report{Zones: s.dispatch.ZoneStatistics()}

	var completedDistance float64
	for _, t := range s.trips.All() {
		r.TotalTrips++
		switch t.State {
		case trip.StateCompleted:
			r.CompletedTrips++
			r.TotalDistance += t.Distance
			completedDistance += t.Distance
			r.TotalRevenue += t.Cost
			if t.CrossZone {
				r.CrossZoneTrips++
			}
		case trip.StateCancelled:
			r.CancelledTrips++
		default:
			r.ActiveTrips++
		}
	}
	if r.TotalTrips > 0 {
		r.CompletionRate = pricing.Round2(float64(r.CompletedTrips) / float64(r.TotalTrips) * 100)
		r.CancellationRate = pricing.Round2(float64(r.CancelledTrips) / float64(r.TotalTrips) * 100)
	}
	if r.CompletedTrips > 0 {
		r.AverageTripDistance = pricing.Round2(completedDistance / float64(r.CompletedTrips))
		r.CrossZoneShare = pricing.Round2(float64(r.CrossZoneTrips) / float64(r.CompletedTrips) * 100)
	}
	r.TotalDistance = pricing.Round2(r.TotalDistance)
	r.TotalRevenue = pricing.Round2(r.TotalRevenue)

	var utilSum float64
	var utilCount int
	for _, d := range s.drivers.All() {
		r.TotalDrivers++
		switch d.Status {
		case driver.StatusAvailable:
			r.AvailableDrivers++
		case driver.StatusBusy:
			r.BusyDrivers++
		}
		if d.TotalTrips > 0 || d.ActiveMinutes > 0 {
			utilSum += d.UtilizationRate()
			utilCount++
		}
	}
	if utilCount > 0 {
		r.AverageDriverUtilization = pricing.Round2(utilSum / float64(utilCount))
	}

	r.TotalRiders = s.riders.Len()
	return r
}

// DriverAnalytics summarizes a single driver.
func (s *System) DriverAnalytics(driverID types.ID) (*DriverReport, error) {
	d, ok := s.drivers.Get(driverID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", driver.ErrNotFound, driverID)
	}

	var earnings float64
	var cancelled int
	for _, t := range s.trips.All() {
		if t.DriverID != driverID {
			continue
		}
		switch t.State {
		case trip.StateCompleted:
			earnings += t.Cost
		case trip.StateCancelled:
			cancelled++
		}
	}

	return &DriverReport{
		DriverID:        d.ID,
		Name:            d.Name,
		Status:          d.Status,
		Location:        d.Location,
		Zone:            d.Zone,
		TotalTrips:      d.TotalTrips,
		CancelledTrips:  cancelled,
		TotalDistance:   pricing.Round2(d.TotalDistance),
		TotalEarnings:   pricing.Round2(earnings),
		ActiveMinutes:   pricing.Round1(d.ActiveMinutes),
		IdleMinutes:     pricing.Round1(d.IdleMinutes),
		UtilizationRate: d.UtilizationRate(),
	}, nil
}
