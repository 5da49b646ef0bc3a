// README: Prometheus counters for facade operations.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripsRequested = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "trips_requested_total", Help: "Total trips requested"})
	TripsAssigned  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "trips_assigned_total", Help: "Total trips assigned to a driver"})
	TripsCompleted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "trips_completed_total", Help: "Total trips completed"})
	TripsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "trips_cancelled_total", Help: "Total trips cancelled"})
	Rollbacks      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rideshare", Name: "rollbacks_total", Help: "Total operations rolled back"})
	DriversBusy    = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "rideshare", Name: "drivers_busy", Help: "Number of drivers currently on a trip"})
)
