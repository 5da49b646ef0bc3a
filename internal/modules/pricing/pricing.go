// README: Fare formula shared by trip commitment and dispatch estimates.
package pricing

import "math"

const (
	// BaseFare is the flat component of every fare.
	BaseFare = 5.0
	// PerKmRate is the charge per distance unit.
	PerKmRate = 2.0
	// CrossZoneMultiplier is applied when pickup and drop-off zones differ.
	CrossZoneMultiplier = 1.5
	// AverageSpeedKmh is the assumed travel speed for duration estimates.
	AverageSpeedKmh = 30.0
)

// Fare computes the cost of a trip over the given distance. Committed trip
// costs and read-only estimates both go through here so the two can never
// drift apart. The result is rounded to 2 decimal places.
func Fare(distance float64, crossZone bool) float64 {
	cost := BaseFare + distance*PerKmRate
	if crossZone {
		cost *= CrossZoneMultiplier
	}
	return Round2(cost)
}

// EstimateMinutes converts a distance into an expected travel time in
// minutes at the assumed average speed.
func EstimateMinutes(distance float64) float64 {
	return distance / AverageSpeedKmh * 60
}

// Round2 rounds to 2 decimal places (cents).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place; used for reported durations.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
