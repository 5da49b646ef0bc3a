// README: Dispatch engine tests (zone preference, penalty ranking, estimates).
package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/trip"
	"rideshare/internal/roadnet"
	"rideshare/internal/types"
)

// twoZoneNetwork: A1 and A2 in Zone-A (2 km apart), B1 in Zone-B, with B1 only
// 1 km from A1. A same-zone driver at A2 is farther than the Zone-B driver.
func twoZoneNetwork(t *testing.T) *roadnet.Network {
	t.Helper()
	n := roadnet.NewNetwork("two-zone")
	mustNode := func(id types.ID, zone string) {
		t.Helper()
		_, err := n.AddNode(id, string(id), zone, 0, 0)
		require.NoError(t, err)
	}
	mustNode("A1", "Zone-A")
	mustNode("A2", "Zone-A")
	mustNode("B1", "Zone-B")
	require.NoError(t, n.AddEdge("A1", "A2", 2.0, true))
	require.NoError(t, n.AddEdge("A1", "B1", 1.0, true))
	return n
}

func newEngine(t *testing.T, n *roadnet.Network, seed ...*driver.Driver) (*Engine, *driver.Store) {
	t.Helper()
	store := driver.NewStore()
	for _, d := range seed {
		store.Put(d)
	}
	return NewEngine(n, store), store
}

func TestFindBestDriverPrefersSameZone(t *testing.T) {
	n := twoZoneNetwork(t)
	sameZone := driver.New("D-0001", "far same-zone", "A2", "Zone-A")
	closer := driver.New("D-0002", "near cross-zone", "B1", "Zone-B")
	e, _ := newEngine(t, n, sameZone, closer)

	// 2 km same-zone beats 1 km cross-zone: zone preference is absolute.
	cand := e.FindBestDriver("A1")
	require.NotNil(t, cand)
	assert.Equal(t, types.ID("D-0001"), cand.Driver.ID)
	assert.Equal(t, 2.0, cand.Distance)
	assert.False(t, cand.CrossZone)
}

func TestFindBestDriverFallsBackAcrossZones(t *testing.T) {
	n := twoZoneNetwork(t)
	busy := driver.New("D-0001", "busy", "A2", "Zone-A")
	require.NoError(t, busy.AssignTrip("T-9999"))
	remote := driver.New("D-0002", "remote", "B1", "Zone-B")
	e, _ := newEngine(t, n, busy, remote)

	cand := e.FindBestDriver("A1")
	require.NotNil(t, cand)
	assert.Equal(t, types.ID("D-0002"), cand.Driver.ID)
	assert.True(t, cand.CrossZone)
	// Raw distance, not the penalized ranking value.
	assert.Equal(t, 1.0, cand.Distance)
}

func TestFindBestDriverPenaltyStillRanksByDistance(t *testing.T) {
	n := roadnet.NewNetwork("spread")
	for _, spec := range []struct {
		id   types.ID
		zone string
	}{{"P", "Zone-P"}, {"X", "Zone-X"}, {"Y", "Zone-Y"}} {
		_, err := n.AddNode(spec.id, string(spec.id), spec.zone, 0, 0)
		require.NoError(t, err)
	}
	require.NoError(t, n.AddEdge("X", "P", 3.0, true))
	require.NoError(t, n.AddEdge("Y", "P", 5.0, true))

	far := driver.New("D-0001", "far", "Y", "Zone-Y")
	near := driver.New("D-0002", "near", "X", "Zone-X")
	e, _ := newEngine(t, n, far, near)

	cand := e.FindBestDriver("P")
	require.NotNil(t, cand)
	assert.Equal(t, types.ID("D-0002"), cand.Driver.ID)
	assert.Equal(t, 3.0, cand.Distance)
}

func TestFindBestDriverNoDrivers(t *testing.T) {
	e, _ := newEngine(t, twoZoneNetwork(t))
	assert.Nil(t, e.FindBestDriver("A1"))
	assert.Nil(t, e.FindBestDriver("unknown"))
}

func TestFindBestDriverSkipsUnreachable(t *testing.T) {
	n := twoZoneNetwork(t)
	_, err := n.AddNode("X1", "island", "Zone-X", 9, 9)
	require.NoError(t, err)
	stranded := driver.New("D-0001", "stranded", "X1", "Zone-X")
	e, _ := newEngine(t, n, stranded)

	assert.Nil(t, e.FindBestDriver("A1"))
}

func TestFindBestDriverTieKeepsFirstRegistered(t *testing.T) {
	n := twoZoneNetwork(t)
	first := driver.New("D-0007", "first", "A2", "Zone-A")
	second := driver.New("D-0002", "second", "A2", "Zone-A")
	e, _ := newEngine(t, n, first, second)

	cand := e.FindBestDriver("A1")
	require.NotNil(t, cand)
	assert.Equal(t, types.ID("D-0007"), cand.Driver.ID)
}

func TestAssignDriverToTrip(t *testing.T) {
	n := twoZoneNetwork(t)
	d := driver.New("D-0001", "Alice", "A2", "Zone-A")
	e, _ := newEngine(t, n, d)

	tr := trip.New("T-0001", "R-0001", "A1", "B1", "Zone-A", "Zone-B")
	got, err := e.AssignDriverToTrip(tr)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, trip.StateAssigned, tr.State)
	assert.Equal(t, types.ID("D-0001"), tr.DriverID)
	// Trip distance is pickup→dropoff, not the driver's approach.
	assert.Equal(t, 1.0, tr.Distance)
	assert.Equal(t, []types.ID{"A1", "B1"}, tr.Path)
	assert.Equal(t, driver.StatusBusy, d.Status)
}

func TestAssignDriverToTripNoRoute(t *testing.T) {
	n := twoZoneNetwork(t)
	_, err := n.AddNode("X1", "island", "Zone-X", 9, 9)
	require.NoError(t, err)
	d := driver.New("D-0001", "Alice", "A1", "Zone-A")
	e, _ := newEngine(t, n, d)

	tr := trip.New("T-0001", "R-0001", "A1", "X1", "Zone-A", "Zone-X")
	got, err := e.AssignDriverToTrip(tr)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Nothing mutated.
	assert.Equal(t, trip.StateRequested, tr.State)
	assert.Equal(t, driver.StatusAvailable, d.Status)
}

func TestTripEstimate(t *testing.T) {
	n := twoZoneNetwork(t)
	d := driver.New("D-0001", "Alice", "A2", "Zone-A")
	e, _ := newEngine(t, n, d)

	est := e.TripEstimate("A1", "B1")
	require.NotNil(t, est)
	assert.Equal(t, 1.0, est.Distance)
	assert.Equal(t, 2.0, est.EstimatedMinutes)
	assert.Equal(t, 10.5, est.Cost) // (5 + 1*2) * 1.5
	assert.True(t, est.CrossZone)
	assert.True(t, est.DriverAvailable)
	require.NotNil(t, est.DriverETA)
	assert.Equal(t, 4.0, *est.DriverETA) // 2 km approach at 30 km/h

	// Same-zone fare has no surcharge.
	est = e.TripEstimate("A1", "A2")
	require.NotNil(t, est)
	assert.Equal(t, 9.0, est.Cost)
	assert.False(t, est.CrossZone)
}

func TestTripEstimateNoDriver(t *testing.T) {
	e, _ := newEngine(t, twoZoneNetwork(t))

	est := e.TripEstimate("A1", "B1")
	require.NotNil(t, est)
	assert.False(t, est.DriverAvailable)
	assert.Nil(t, est.DriverETA)

	assert.Nil(t, e.TripEstimate("A1", "nowhere"))
}

func TestZoneStatistics(t *testing.T) {
	n := twoZoneNetwork(t)
	a := driver.New("D-0001", "Alice", "A1", "Zone-A")
	b := driver.New("D-0002", "Bob", "A2", "Zone-A")
	c := driver.New("D-0003", "Charlie", "B1", "Zone-B")
	require.NoError(t, b.AssignTrip("T-0001"))
	require.NoError(t, c.GoOffline())
	e, _ := newEngine(t, n, a, b, c)

	stats := e.ZoneStatistics()
	assert.Equal(t, ZoneStats{Total: 2, Available: 1, Busy: 1}, stats["Zone-A"])
	assert.Equal(t, ZoneStats{Total: 1, Offline: 1}, stats["Zone-B"])
}
