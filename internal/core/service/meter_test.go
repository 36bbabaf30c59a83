package service

import (
	"testing"
	"time"

	"github.com/parkwise/parking-client/internal/core/domain"
)

func activeBookingSince(start time.Time) domain.Booking {
	return domain.Booking{
		ID:               1,
		SpotID:           7,
		ParkingTimestamp: domain.APITime{Time: start},
	}
}

func TestElapsed_WholeHoursAndMinutes(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)
	b := activeBookingSince(now.Add(-2*time.Hour - 30*time.Minute))

	hours, minutes := Elapsed(b, now)
	if hours != 2 || minutes != 30 {
		t.Fatalf("elapsed = (%d, %d), want (2, 30)", hours, minutes)
	}
}

func TestElapsed_FloorsPartialMinutes(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	b := activeBookingSince(now.Add(-59*time.Minute - 59*time.Second))

	hours, minutes := Elapsed(b, now)
	if hours != 0 || minutes != 59 {
		t.Fatalf("elapsed = (%d, %d), want (0, 59)", hours, minutes)
	}
}

func TestElapsed_ClampsClockSkew(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	b := activeBookingSince(now.Add(5 * time.Minute))

	hours, minutes := Elapsed(b, now)
	if hours != 0 || minutes != 0 {
		t.Fatalf("elapsed = (%d, %d), want (0, 0) for future start", hours, minutes)
	}
}

func TestEstimatedCost_TwoAndAHalfHours(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC)
	b := activeBookingSince(now.Add(-2*time.Hour - 30*time.Minute))

	cost := EstimatedCost(b, now, 50)
	if cost != 125.00 {
		t.Fatalf("estimated cost = %v, want 125.00", cost)
	}
}

func TestEstimatedCost_RoundsToTwoDecimals(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	b := activeBookingSince(now.Add(-10 * time.Minute))

	// 1/6 hour * 10 = 1.666... → 1.67
	cost := EstimatedCost(b, now, 10)
	if cost != 1.67 {
		t.Fatalf("estimated cost = %v, want 1.67", cost)
	}
}

func TestMeter_MonotonicAsClockAdvances(t *testing.T) {
	start := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	b := activeBookingSince(start)

	prevCost := -1.0
	prevMinutes := -1
	for i := 0; i < 500; i++ {
		now := start.Add(time.Duration(i) * 37 * time.Second)
		hours, minutes := Elapsed(b, now)
		total := hours*60 + minutes
		if total < prevMinutes {
			t.Fatalf("elapsed decreased at step %d: %d < %d", i, total, prevMinutes)
		}
		prevMinutes = total

		cost := EstimatedCost(b, now, 42.5)
		if cost < prevCost {
			t.Fatalf("estimated cost decreased at step %d: %v < %v", i, cost, prevCost)
		}
		prevCost = cost
	}
}

func TestBookingActive(t *testing.T) {
	b := activeBookingSince(time.Now())
	if !b.Active() {
		t.Fatalf("booking without leaving timestamp must be active")
	}

	end := domain.APITime{Time: time.Now()}
	b.LeavingTimestamp = &end
	if b.Active() {
		t.Fatalf("booking with leaving timestamp must not be active")
	}
}
