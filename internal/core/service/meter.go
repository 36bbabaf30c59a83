package service

import (
	"math"
	"time"

	"github.com/parkwise/parking-client/internal/core/domain"
)

// Booking time model. All figures here are pure functions of the wall clock
// and are estimates for live display only — the final cost of a booking is
// whatever the server returns when it is released.

// Elapsed returns the time spent parked as whole hours plus remainder
// minutes, using floor division. A clock reading before the booking start
// (skew between client and server) counts as zero.
func Elapsed(b domain.Booking, now time.Time) (hours, minutes int) {
	d := now.Sub(b.ParkingTimestamp.Time)
	if d < 0 {
		d = 0
	}
	hours = int(d / time.Hour)
	minutes = int((d % time.Hour) / time.Minute)
	return hours, minutes
}

// EstimatedCost returns the running charge for an active booking: fractional
// elapsed hours times the lot's hourly rate, rounded to two decimals for
// display. Non-decreasing as now advances.
func EstimatedCost(b domain.Booking, now time.Time, ratePerHour float64) float64 {
	d := now.Sub(b.ParkingTimestamp.Time)
	if d < 0 {
		d = 0
	}
	return round2(d.Hours() * ratePerHour)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
