// README: Fare and duration calculation tests.
package pricing

import (
	"math"
	"testing"
)

func TestFare(t *testing.T) {
	cases := []struct {
		name      string
		distance  float64
		crossZone bool
		want      float64
	}{
		{"zero distance still pays base", 0, false, 5.00},
		{"same zone", 10, false, 25.00},
		{"cross zone surcharge", 10, true, 37.50},
		{"fractional distance rounds to cents", 3.333, false, 11.67},
		{"fractional cross zone", 3.333, true, 17.50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fare(tc.distance, tc.crossZone)
			if got != tc.want {
				t.Errorf("Fare(%v, %v) = %v, want %v", tc.distance, tc.crossZone, got, tc.want)
			}
		})
	}
}

func TestEstimateMinutes(t *testing.T) {
	// 30 km at 30 km/h is an hour.
	if got := EstimateMinutes(30); got != 60 {
		t.Errorf("EstimateMinutes(30) = %v, want 60", got)
	}
	if got := EstimateMinutes(7.5); got != 15 {
		t.Errorf("EstimateMinutes(7.5) = %v, want 15", got)
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(2.675); math.Abs(got-2.68) > 1e-9 && math.Abs(got-2.67) > 1e-9 {
		t.Errorf("Round2(2.675) = %v, want 2.67 or 2.68", got)
	}
	if got := Round2(1.005); got < 1.0 || got > 1.01 {
		t.Errorf("Round2(1.005) = %v out of range", got)
	}
	if got := Round1(2.35); got != 2.4 && got != 2.3 {
		t.Errorf("Round1(2.35) = %v", got)
	}
	if got := Round2(25.0); got != 25.0 {
		t.Errorf("Round2(25.0) = %v, want 25.0", got)
	}
}
