// README: Entry point; loads config, builds the sample city, and runs a scripted simulation.
package main

import (
	"fmt"
	"log"

	"rideshare/internal/config"
	"rideshare/internal/logging"
	"rideshare/internal/roadnet"
	"rideshare/internal/system"
	"rideshare/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel)

	net := roadnet.SampleNetwork()
	sys := system.New(net, system.Options{
		Logger:           logger,
		RollbackCapacity: cfg.RollbackCapacity,
	})

	fmt.Printf("=== %s ===\n", net.Name)
	fmt.Printf("zones: %v\n\n", net.Zones())

	path, dist, err := sys.ShortestPath("A1", "B3")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("route A1 → B3: %v (%.1f km)\n\n", path, dist)

	driverSeed := []struct {
		name     string
		location types.ID
	}{
		{"Alice", "A1"},
		{"Bob", "A2"},
		{"Charlie", "B1"},
		{"Diana", "B2"},
		{"Eve", "C1"},
	}
	for _, seed := range driverSeed {
		if _, err := sys.CreateDriver(seed.name, seed.location); err != nil {
			log.Fatal(err)
		}
	}

	riderSeed := []struct {
		name     string
		location types.ID
	}{
		{"John", "A1"},
		{"Jane", "B1"},
		{"Mike", "C1"},
	}
	var riderIDs []types.ID
	for _, seed := range riderSeed {
		r, err := sys.CreateRider(seed.name, seed.location)
		if err != nil {
			log.Fatal(err)
		}
		riderIDs = append(riderIDs, r.ID)
	}

	// Same-zone trip, start to finish.
	runTrip(sys, riderIDs[0], "A1", "A3")

	// Cross-zone trip picks up the surcharge.
	runTrip(sys, riderIDs[1], "B1", "C2")

	// A request that gets cancelled before pickup.
	t, err := sys.RequestTrip(riderIDs[2], "C1", "A1")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := sys.AssignTrip(t.ID); err != nil {
		log.Fatal(err)
	}
	if err := sys.CancelTrip(t.ID); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("trip %s cancelled before pickup\n\n", t.ID)

	fmt.Println("--- recent operations ---")
	for _, op := range sys.History(cfg.HistoryWindow) {
		fmt.Printf("  %s  %-22s %s\n", op.ID, op.Type, op.Description)
	}
	fmt.Println()

	if op := sys.RollbackLast(); op != nil {
		fmt.Printf("rolled back: %s (%s)\n", op.ID, op.Type)
	}
	if ct, ok := sys.Trip(t.ID); ok {
		fmt.Printf("trip %s is now %s\n\n", ct.ID, ct.State)
	}

	report := sys.Analytics()
	fmt.Println("--- analytics ---")
	fmt.Printf("trips: %d total, %d completed, %d cancelled, %d active\n",
		report.TotalTrips, report.CompletedTrips, report.CancelledTrips, report.ActiveTrips)
	fmt.Printf("completion rate: %.2f%%, cross-zone share: %.2f%%\n",
		report.CompletionRate, report.CrossZoneShare)
	fmt.Printf("distance: %.2f km, revenue: $%.2f\n", report.TotalDistance, report.TotalRevenue)
	fmt.Printf("drivers: %d total, %d available, %d busy, utilization %.2f\n",
		report.TotalDrivers, report.AvailableDrivers, report.BusyDrivers, report.AverageDriverUtilization)
	for zone, stats := range report.Zones {
		fmt.Printf("  %-8s %d drivers (%d available)\n", zone, stats.Total, stats.Available)
	}
}

func runTrip(sys *system.System, riderID, pickup, dropoff types.ID) {
	t, err := sys.RequestTrip(riderID, pickup, dropoff)
	if err != nil {
		log.Fatal(err)
	}
	d, err := sys.AssignTrip(t.ID)
	if err != nil {
		log.Fatal(err)
	}
	if d == nil {
		fmt.Printf("trip %s: no driver available\n\n", t.ID)
		return
	}
	if err := sys.StartTrip(t.ID); err != nil {
		log.Fatal(err)
	}
	if err := sys.CompleteTrip(t.ID, nil); err != nil {
		log.Fatal(err)
	}

	completed, _ := sys.Trip(t.ID)
	label := "same-zone"
	if completed.CrossZone {
		label = "cross-zone"
	}
	fmt.Printf("trip %s (%s): %s → %s with %s, %.1f km, $%.2f, state %s\n\n",
		completed.ID, label, pickup, dropoff, d.Name, completed.Distance, completed.Cost, completed.State)
}
