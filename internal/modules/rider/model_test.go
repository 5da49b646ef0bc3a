// README: Rider lifecycle tests.
package rider

import (
	"errors"
	"testing"
)

func TestBeginTripRejectsSecondActive(t *testing.T) {
	r := New("R-0001", "John", "A1")
	if r.HasActiveTrip() {
		t.Fatal("new rider should have no active trip")
	}

	if err := r.BeginTrip("T-0001"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := r.BeginTrip("T-0002"); !errors.Is(err, ErrActiveTrip) {
		t.Fatalf("second begin: err = %v, want ErrActiveTrip", err)
	}
}

func TestCompleteTripAccruesHistory(t *testing.T) {
	r := New("R-0001", "John", "A1")
	_ = r.BeginTrip("T-0001")

	r.CompleteTrip("T-0001", 8.0, 21.0)
	if r.HasActiveTrip() {
		t.Fatal("trip should be closed")
	}
	if r.TotalTrips != 1 || r.TotalDistance != 8.0 || r.TotalSpent != 21.0 {
		t.Errorf("counters = %d trips, %v km, $%v", r.TotalTrips, r.TotalDistance, r.TotalSpent)
	}
	if len(r.TripHistory) != 1 || r.TripHistory[0] != "T-0001" {
		t.Errorf("history = %v", r.TripHistory)
	}

	// Free for the next request.
	if err := r.BeginTrip("T-0002"); err != nil {
		t.Fatalf("begin after complete: %v", err)
	}
}

func TestCancelTripLeavesNoHistory(t *testing.T) {
	r := New("R-0001", "John", "A1")
	_ = r.BeginTrip("T-0001")

	r.CancelTrip()
	if r.HasActiveTrip() {
		t.Fatal("trip should be cleared")
	}
	if r.TotalTrips != 0 || len(r.TripHistory) != 0 {
		t.Errorf("cancelled trip accrued: %d trips, history %v", r.TotalTrips, r.TripHistory)
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := New("R-0001", "John", "A1")
	_ = r.BeginTrip("T-0001")
	r.CompleteTrip("T-0001", 5, 15)
	snap := r.Snapshot()

	_ = r.BeginTrip("T-0002")
	r.UpdateLocation("B1")
	r.TripHistory = append(r.TripHistory, "T-0099")

	r.Restore(snap)
	if r.HasActiveTrip() || r.Location != "A1" {
		t.Errorf("restore missed fields: %+v", r)
	}
	if len(r.TripHistory) != 1 {
		t.Errorf("restored history = %v", r.TripHistory)
	}

	clone := FromSnapshot(snap)
	if clone.ID != r.ID || clone.TotalSpent != r.TotalSpent {
		t.Errorf("clone differs: %+v", clone)
	}
}
