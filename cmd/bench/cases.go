// README: Smoke-check cases; routing, dispatch, lifecycle, rollback, and perf scenarios.
package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"rideshare/internal/modules/trip"
	"rideshare/internal/roadnet"
	"rideshare/internal/system"
	"rideshare/internal/types"
)

type Runner struct {
	cfg Config
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type Check struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	checks := r.checks()
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		if ctx.Err() != nil {
			results = append(results, Result{Name: c.Name, Status: "SKIP", Note: "timeout budget exhausted"})
			continue
		}
		start := time.Now()
		res := c.Run(ctx, r)
		res.Name = c.Name
		res.Latency = time.Since(start)
		fmt.Printf("%-40s %-5s %8s  %s\n", res.Name, res.Status, res.Latency.Round(time.Microsecond), res.Note)
		results = append(results, res)
	}
	return results
}

func pass(note string) Result { return Result{Status: "PASS", Note: note} }
func fail(note string) Result { return Result{Status: "FAIL", Note: note} }

func newSystem() *system.System {
	return system.New(roadnet.SampleNetwork(), system.Options{})
}

func (r *Runner) checks() []Check {
	return []Check{
		{Name: "routing/multi-hop-beats-direct", Run: checkRouting},
		{Name: "routing/unreachable-is-not-error", Run: checkUnreachable},
		{Name: "dispatch/same-zone-preference", Run: checkSameZonePreference},
		{Name: "trip/full-lifecycle", Run: checkLifecycle},
		{Name: "trip/cancel-after-pickup-rejected", Run: checkCancelGuard},
		{Name: "pricing/cross-zone-surcharge", Run: checkSurcharge},
		{Name: "rollback/full-scenario-inverse", Run: checkRollbackInverse},
		{Name: "perf/shortest-path-throughput", Run: checkRoutingThroughput},
	}
}

func checkRouting(_ context.Context, _ *Runner) Result {
	n := roadnet.SampleNetwork()
	path, dist, err := n.ShortestPath("A1", "B3")
	if err != nil {
		return fail(err.Error())
	}
	if len(path) < 3 || math.IsInf(dist, 1) {
		return fail(fmt.Sprintf("path=%v dist=%v", path, dist))
	}
	return pass(fmt.Sprintf("%.1f km over %d nodes", dist, len(path)))
}

func checkUnreachable(_ context.Context, _ *Runner) Result {
	n := roadnet.NewNetwork("split")
	if _, err := n.AddNode("A", "a", "Z1", 0, 0); err != nil {
		return fail(err.Error())
	}
	if _, err := n.AddNode("B", "b", "Z2", 1, 1); err != nil {
		return fail(err.Error())
	}
	path, dist, err := n.ShortestPath("A", "B")
	if err != nil {
		return fail(err.Error())
	}
	if len(path) != 0 || !math.IsInf(dist, 1) {
		return fail("disconnected pair should yield empty path and +Inf")
	}
	return pass("")
}

func checkSameZonePreference(_ context.Context, _ *Runner) Result {
	s := newSystem()
	// Same-zone driver 10 km out versus a cross-zone driver only 6 km out.
	if _, err := s.CreateDriver("far-same-zone", "A1"); err != nil {
		return fail(err.Error())
	}
	if _, err := s.CreateDriver("near-cross-zone", "C1"); err != nil {
		return fail(err.Error())
	}
	rd, err := s.CreateRider("probe", "A3")
	if err != nil {
		return fail(err.Error())
	}
	t, err := s.RequestTrip(rd.ID, "A3", "A2")
	if err != nil {
		return fail(err.Error())
	}
	d, err := s.AssignTrip(t.ID)
	if err != nil {
		return fail(err.Error())
	}
	if d == nil || d.Name != "far-same-zone" {
		return fail(fmt.Sprintf("picked %+v", d))
	}
	return pass("zone preference held over shorter approach")
}

func checkLifecycle(_ context.Context, _ *Runner) Result {
	s := newSystem()
	if _, err := s.CreateDriver("d", "A1"); err != nil {
		return fail(err.Error())
	}
	rd, err := s.CreateRider("r", "A1")
	if err != nil {
		return fail(err.Error())
	}
	t, err := s.RequestTrip(rd.ID, "A1", "A3")
	if err != nil {
		return fail(err.Error())
	}
	if _, err := s.AssignTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.StartTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.CompleteTrip(t.ID, nil); err != nil {
		return fail(err.Error())
	}
	if t.State != trip.StateCompleted {
		return fail(string(t.State))
	}
	return pass(fmt.Sprintf("$%.2f for %.1f km", t.Cost, t.Distance))
}

func checkCancelGuard(_ context.Context, _ *Runner) Result {
	s := newSystem()
	if _, err := s.CreateDriver("d", "A1"); err != nil {
		return fail(err.Error())
	}
	rd, err := s.CreateRider("r", "A1")
	if err != nil {
		return fail(err.Error())
	}
	t, err := s.RequestTrip(rd.ID, "A1", "A2")
	if err != nil {
		return fail(err.Error())
	}
	if _, err := s.AssignTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.StartTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.CancelTrip(t.ID); err == nil {
		return fail("cancel of ongoing trip must be rejected")
	}
	return pass("")
}

func checkSurcharge(_ context.Context, _ *Runner) Result {
	s := newSystem()
	same := s.TripEstimate("A1", "A2")
	cross := s.TripEstimate("B3", "C2")
	if same == nil || cross == nil {
		return fail("estimates unavailable")
	}
	if same.CrossZone || !cross.CrossZone {
		return fail("zone classification wrong")
	}
	// 5 km same-zone and 5 km cross-zone differ exactly by the multiplier.
	if cross.Cost != 22.5 || same.Cost != 15.0 {
		return fail(fmt.Sprintf("same=%.2f cross=%.2f", same.Cost, cross.Cost))
	}
	return pass("")
}

func checkRollbackInverse(_ context.Context, _ *Runner) Result {
	s := newSystem()
	if _, err := s.CreateDriver("d", "A1"); err != nil {
		return fail(err.Error())
	}
	rd, err := s.CreateRider("r", "A1")
	if err != nil {
		return fail(err.Error())
	}
	t, err := s.RequestTrip(rd.ID, "A1", "A3")
	if err != nil {
		return fail(err.Error())
	}
	if _, err := s.AssignTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.StartTrip(t.ID); err != nil {
		return fail(err.Error())
	}
	if err := s.CompleteTrip(t.ID, nil); err != nil {
		return fail(err.Error())
	}

	undone := s.RollbackK(s.OperationCount())
	if s.CanRollback() {
		return fail("log not drained")
	}
	if len(s.Drivers()) != 0 || len(s.Riders()) != 0 || len(s.Trips()) != 0 {
		return fail("entities survived full rollback")
	}
	return pass(fmt.Sprintf("%d operations unwound", len(undone)))
}

func checkRoutingThroughput(ctx context.Context, r *Runner) Result {
	n := roadnet.SampleNetwork()
	pairs := [][2]types.ID{{"A1", "B3"}, {"C1", "B1"}, {"A3", "C2"}, {"M1", "A1"}}

	start := time.Now()
	for i := 0; i < r.cfg.Iterations; i++ {
		if ctx.Err() != nil {
			return Result{Status: "SKIP", Note: "timeout budget exhausted"}
		}
		p := pairs[i%len(pairs)]
		if _, _, err := n.ShortestPath(p[0], p[1]); err != nil {
			return fail(err.Error())
		}
	}
	elapsed := time.Since(start)
	perOp := elapsed / time.Duration(r.cfg.Iterations)
	return pass(fmt.Sprintf("%d routes in %s (%s/op)", r.cfg.Iterations, elapsed.Round(time.Millisecond), perOp))
}
