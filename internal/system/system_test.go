// README: Facade integration tests over the sample city.
package system

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideshare/internal/modules/driver"
	"rideshare/internal/modules/rider"
	"rideshare/internal/modules/trip"
	"rideshare/internal/observability"
	"rideshare/internal/roadnet"
	"rideshare/internal/types"
)

func newTestSystem(t *testing.T) *System {
	t.Helper()
	return New(roadnet.SampleNetwork(), Options{})
}

// seedTrip creates a driver plus rider and drives a trip to the given
// state.
func seedTrip(t *testing.T, s *System, upTo trip.State) (*driver.Driver, *rider.Rider, *trip.Trip) {
	t.Helper()
	d, err := s.CreateDriver("Alice", "A1")
	require.NoError(t, err)
	r, err := s.CreateRider("John", "A1")
	require.NoError(t, err)
	tr, err := s.RequestTrip(r.ID, "A1", "A3")
	require.NoError(t, err)

	if upTo == trip.StateRequested {
		return d, r, tr
	}
	got, err := s.AssignTrip(tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	if upTo == trip.StateAssigned {
		return d, r, tr
	}
	require.NoError(t, s.StartTrip(tr.ID))
	if upTo == trip.StateOngoing {
		return d, r, tr
	}
	require.NoError(t, s.CompleteTrip(tr.ID, nil))
	return d, r, tr
}

func TestCreateDriverAndRiderIDs(t *testing.T) {
	s := newTestSystem(t)

	d1, err := s.CreateDriver("Alice", "A1")
	require.NoError(t, err)
	d2, err := s.CreateDriver("Bob", "B1")
	require.NoError(t, err)
	r1, err := s.CreateRider("John", "C1")
	require.NoError(t, err)

	assert.Equal(t, types.ID("D-0001"), d1.ID)
	assert.Equal(t, types.ID("D-0002"), d2.ID)
	assert.Equal(t, types.ID("R-0001"), r1.ID)
	assert.Equal(t, "Zone-A", d1.Zone)

	_, err = s.CreateDriver("Ghost", "nowhere")
	assert.ErrorIs(t, err, roadnet.ErrUnknownNode)
	_, err = s.CreateRider("Ghost", "nowhere")
	assert.ErrorIs(t, err, roadnet.ErrUnknownNode)
}

func TestTripFullLifecycle(t *testing.T) {
	s := newTestSystem(t)
	d, r, tr := seedTrip(t, s, trip.StateCompleted)

	assert.Equal(t, trip.StateCompleted, tr.State)
	assert.Equal(t, d.ID, tr.DriverID)
	assert.False(t, tr.CrossZone)

	// Driver moved to the drop-off and accrued the trip.
	assert.Equal(t, types.ID("A3"), d.Location)
	assert.Equal(t, driver.StatusAvailable, d.Status)
	assert.Equal(t, 1, d.TotalTrips)
	assert.Equal(t, tr.Distance, d.TotalDistance)

	// Rider too.
	assert.Equal(t, types.ID("A3"), r.Location)
	assert.False(t, r.HasActiveTrip())
	assert.Equal(t, tr.Cost, r.TotalSpent)
}

func TestRequestTripValidation(t *testing.T) {
	s := newTestSystem(t)
	r, err := s.CreateRider("John", "A1")
	require.NoError(t, err)

	_, err = s.RequestTrip("R-9999", "A1", "A3")
	assert.ErrorIs(t, err, rider.ErrNotFound)

	_, err = s.RequestTrip(r.ID, "nowhere", "A3")
	assert.ErrorIs(t, err, roadnet.ErrUnknownNode)
	_, err = s.RequestTrip(r.ID, "A1", "nowhere")
	assert.ErrorIs(t, err, roadnet.ErrUnknownNode)

	_, err = s.RequestTrip(r.ID, "A1", "A3")
	require.NoError(t, err)

	// One active trip per rider.
	_, err = s.RequestTrip(r.ID, "A2", "A3")
	assert.ErrorIs(t, err, rider.ErrActiveTrip)
}

func TestAssignTripNoDriverIsNotAnError(t *testing.T) {
	s := newTestSystem(t)
	r, err := s.CreateRider("John", "A1")
	require.NoError(t, err)
	tr, err := s.RequestTrip(r.ID, "A1", "A3")
	require.NoError(t, err)

	before := s.OperationCount()
	d, err := s.AssignTrip(tr.ID)
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, trip.StateRequested, tr.State)
	// No mutation, no log record.
	assert.Equal(t, before, s.OperationCount())
}

func TestAssignTripStateGuard(t *testing.T) {
	s := newTestSystem(t)
	_, _, tr := seedTrip(t, s, trip.StateAssigned)

	_, err := s.AssignTrip(tr.ID)
	assert.ErrorIs(t, err, trip.ErrInvalidTransition)

	_, err = s.AssignTrip("T-9999")
	assert.ErrorIs(t, err, trip.ErrNotFound)
}

func TestCrossZoneTripCostsMore(t *testing.T) {
	s := newTestSystem(t)
	_, err := s.CreateDriver("Alice", "B1")
	require.NoError(t, err)
	r, err := s.CreateRider("Jane", "B1")
	require.NoError(t, err)

	tr, err := s.RequestTrip(r.ID, "B1", "C2")
	require.NoError(t, err)
	require.True(t, tr.CrossZone)

	_, err = s.AssignTrip(tr.ID)
	require.NoError(t, err)

	est := s.TripEstimate("B1", "C2")
	require.NotNil(t, est)
	assert.Equal(t, est.Cost, tr.Cost)
	assert.True(t, est.CrossZone)
}

func TestCancelTripFreesDriverAndRider(t *testing.T) {
	s := newTestSystem(t)
	d, r, tr := seedTrip(t, s, trip.StateAssigned)

	require.NoError(t, s.CancelTrip(tr.ID))
	assert.Equal(t, trip.StateCancelled, tr.State)
	assert.Equal(t, driver.StatusAvailable, d.Status)
	assert.False(t, r.HasActiveTrip())

	// Cancel is closed after pickup.
	s2 := newTestSystem(t)
	_, _, tr2 := seedTrip(t, s2, trip.StateOngoing)
	assert.ErrorIs(t, s2.CancelTrip(tr2.ID), trip.ErrInvalidTransition)
}

func TestDriverOfflineRules(t *testing.T) {
	s := newTestSystem(t)
	d, _, _ := seedTrip(t, s, trip.StateAssigned)

	assert.ErrorIs(t, s.SetDriverOffline(d.ID), driver.ErrOnTrip)
	assert.ErrorIs(t, s.SetDriverOffline("D-9999"), driver.ErrNotFound)

	s2 := newTestSystem(t)
	d2, err := s2.CreateDriver("Alice", "A1")
	require.NoError(t, err)
	require.NoError(t, s2.SetDriverOffline(d2.ID))
	assert.Empty(t, s2.AvailableDrivers())
	require.NoError(t, s2.SetDriverOnline(d2.ID))
	assert.Len(t, s2.AvailableDrivers(), 1)
}

func TestUpdateDriverLocation(t *testing.T) {
	s := newTestSystem(t)
	d, err := s.CreateDriver("Alice", "A1")
	require.NoError(t, err)

	assert.True(t, s.UpdateDriverLocation(d.ID, "B1"))
	assert.Equal(t, types.ID("B1"), d.Location)
	assert.Equal(t, "Zone-B", d.Zone)

	assert.False(t, s.UpdateDriverLocation(d.ID, "nowhere"))
	assert.False(t, s.UpdateDriverLocation("D-9999", "A1"))
}

func TestRollbackCreateRemovesEntity(t *testing.T) {
	s := newTestSystem(t)
	d, err := s.CreateDriver("Alice", "A1")
	require.NoError(t, err)

	op := s.RollbackLast()
	require.NotNil(t, op)
	_, ok := s.Driver(d.ID)
	assert.False(t, ok)

	// The sequence keeps counting; IDs are never reused out of order.
	d2, err := s.CreateDriver("Bob", "A2")
	require.NoError(t, err)
	assert.Equal(t, types.ID("D-0002"), d2.ID)
}

func TestRollbackCompleteRestoresCountersAndState(t *testing.T) {
	s := newTestSystem(t)
	d, r, tr := seedTrip(t, s, trip.StateCompleted)

	require.Equal(t, 1, d.TotalTrips)
	require.Equal(t, types.ID("A3"), d.Location)

	op := s.RollbackLast()
	require.NotNil(t, op)

	assert.Equal(t, trip.StateOngoing, tr.State)
	assert.Equal(t, driver.StatusBusy, d.Status)
	assert.Equal(t, 0, d.TotalTrips)
	assert.Equal(t, 0.0, d.TotalDistance)
	assert.Equal(t, types.ID("A1"), d.Location)
	assert.True(t, r.HasActiveTrip())
	assert.Equal(t, 0.0, r.TotalSpent)
}

func TestRollbackCancelRestoresBusyDriver(t *testing.T) {
	s := newTestSystem(t)
	d, r, tr := seedTrip(t, s, trip.StateAssigned)
	require.NoError(t, s.CancelTrip(tr.ID))

	op := s.RollbackLast()
	require.NotNil(t, op)

	assert.Equal(t, trip.StateAssigned, tr.State)
	assert.Equal(t, driver.StatusBusy, d.Status)
	assert.Equal(t, tr.ID, d.CurrentTripID)
	assert.Equal(t, tr.ID, r.CurrentTripID)
}

func TestRollbackEmptyLog(t *testing.T) {
	s := newTestSystem(t)
	assert.Nil(t, s.RollbackLast())
	assert.False(t, s.CanRollback())
	assert.Empty(t, s.RollbackK(3))
}

// TestRollbackIsStrictInverse walks a full scenario forward, unwinds all of
// it, and checks the system reads as untouched.
func TestRollbackIsStrictInverse(t *testing.T) {
	s := newTestSystem(t)
	baseline := s.Analytics()

	seedTrip(t, s, trip.StateCompleted)

	n := s.OperationCount()
	require.Greater(t, n, 0)
	undone := s.RollbackK(n)
	assert.Len(t, undone, n)

	assert.Empty(t, s.Drivers())
	assert.Empty(t, s.Riders())
	assert.Empty(t, s.Trips())
	assert.Equal(t, baseline, s.Analytics())
	assert.False(t, s.CanRollback())
}

func TestHistoryMostRecentFirst(t *testing.T) {
	s := newTestSystem(t)
	seedTrip(t, s, trip.StateOngoing)

	h := s.History(3)
	require.Len(t, h, 3)
	assert.Equal(t, "start_trip", string(h[0].Type))
	assert.Equal(t, "assign_trip", string(h[1].Type))
	assert.Equal(t, "request_trip", string(h[2].Type))
}

func TestAnalytics(t *testing.T) {
	s := newTestSystem(t)

	// One completed same-zone trip.
	_, _, done := seedTrip(t, s, trip.StateCompleted)

	// One cancelled trip for a second rider.
	r2, err := s.CreateRider("Jane", "B1")
	require.NoError(t, err)
	tr2, err := s.RequestTrip(r2.ID, "B1", "B2")
	require.NoError(t, err)
	require.NoError(t, s.CancelTrip(tr2.ID))

	// One trip still open.
	r3, err := s.CreateRider("Mike", "C1")
	require.NoError(t, err)
	_, err = s.RequestTrip(r3.ID, "C1", "C2")
	require.NoError(t, err)

	got := s.Analytics()
	assert.Equal(t, 3, got.TotalTrips)
	assert.Equal(t, 1, got.CompletedTrips)
	assert.Equal(t, 1, got.CancelledTrips)
	assert.Equal(t, 1, got.ActiveTrips)
	assert.InDelta(t, 33.33, got.CompletionRate, 0.01)
	assert.InDelta(t, 33.33, got.CancellationRate, 0.01)
	assert.Equal(t, done.Distance, got.TotalDistance)
	assert.Equal(t, done.Cost, got.TotalRevenue)
	assert.Equal(t, 0, got.CrossZoneTrips)
	assert.Equal(t, 1, got.TotalDrivers)
	assert.Equal(t, 3, got.TotalRiders)
	assert.Equal(t, 1, got.AvailableDrivers)
	require.Contains(t, got.Zones, "Zone-A")

	report, err := s.DriverAnalytics("D-0001")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalTrips)
	assert.Equal(t, done.Distance, report.TotalDistance)

	_, err = s.DriverAnalytics("D-9999")
	assert.ErrorIs(t, err, driver.ErrNotFound)
}

func TestDriverAnalyticsEarningsAndCancellations(t *testing.T) {
	s := newTestSystem(t)

	// First trip completes; driver ends up at A3.
	d, r, done := seedTrip(t, s, trip.StateCompleted)

	// Second trip for the same driver gets cancelled after assignment.
	tr2, err := s.RequestTrip(r.ID, "A3", "A1")
	require.NoError(t, err)
	got, err := s.AssignTrip(tr2.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.NoError(t, s.CancelTrip(tr2.ID))

	report, err := s.DriverAnalytics(d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalTrips)
	assert.Equal(t, 1, report.CancelledTrips)
	assert.Equal(t, done.Cost, report.TotalEarnings)

	// Another driver's trips never bleed in.
	d2, err := s.CreateDriver("Bob", "B1")
	require.NoError(t, err)
	other, err := s.DriverAnalytics(d2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, other.TotalEarnings)
	assert.Equal(t, 0, other.CancelledTrips)
}

func TestFacadeOperationsMoveCounters(t *testing.T) {
	s := newTestSystem(t)

	requested := testutil.ToFloat64(observability.TripsRequested)
	assigned := testutil.ToFloat64(observability.TripsAssigned)
	completed := testutil.ToFloat64(observability.TripsCompleted)
	cancelled := testutil.ToFloat64(observability.TripsCancelled)
	rollbacks := testutil.ToFloat64(observability.Rollbacks)

	_, r, _ := seedTrip(t, s, trip.StateCompleted)

	tr2, err := s.RequestTrip(r.ID, "A3", "A1")
	require.NoError(t, err)
	_, err = s.AssignTrip(tr2.ID)
	require.NoError(t, err)
	require.NoError(t, s.CancelTrip(tr2.ID))

	require.NotNil(t, s.RollbackLast())

	assert.Equal(t, requested+2, testutil.ToFloat64(observability.TripsRequested))
	assert.Equal(t, assigned+2, testutil.ToFloat64(observability.TripsAssigned))
	assert.Equal(t, completed+1, testutil.ToFloat64(observability.TripsCompleted))
	assert.Equal(t, cancelled+1, testutil.ToFloat64(observability.TripsCancelled))
	assert.Equal(t, rollbacks+1, testutil.ToFloat64(observability.Rollbacks))
}

func TestAnalyticsAfterRollbackMatchesBefore(t *testing.T) {
	s := newTestSystem(t)
	seedTrip(t, s, trip.StateCompleted)
	want := s.Analytics()

	r2, err := s.CreateRider("Jane", "B1")
	require.NoError(t, err)
	tr2, err := s.RequestTrip(r2.ID, "B1", "C1")
	require.NoError(t, err)
	require.NoError(t, s.CancelTrip(tr2.ID))

	// Undo the cancel, the request, and the rider creation.
	s.RollbackK(3)
	assert.Equal(t, want, s.Analytics())
}

func TestShortestPathPassthrough(t *testing.T) {
	s := newTestSystem(t)
	path, dist, err := s.ShortestPath("A1", "B3")
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.Greater(t, dist, 0.0)

	_, _, err = s.ShortestPath("A1", "nowhere")
	assert.ErrorIs(t, err, roadnet.ErrUnknownNode)
}

func TestActiveTrips(t *testing.T) {
	s := newTestSystem(t)
	_, _, tr := seedTrip(t, s, trip.StateOngoing)

	active := s.ActiveTrips()
	require.Len(t, active, 1)
	assert.Equal(t, tr.ID, active[0].ID)

	require.NoError(t, s.CompleteTrip(tr.ID, nil))
	assert.Empty(t, s.ActiveTrips())
}
