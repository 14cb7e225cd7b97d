package services

import (
	"time"

	"checkin-server/models"
)

// Overlaps reports whether any interval in the ledger strictly overlaps
// [start, end).
func Overlaps(ledger []models.Unavailability, start, end time.Time) bool {
	want := models.NewInterval(start, end)
	for _, u := range ledger {
		if u.Interval().Overlaps(want) {
			return true
		}
	}
	return false
}

func IsAvailable(ledger []models.Unavailability, start, end time.Time) bool {
	return !Overlaps(ledger, start, end)
}

// StatusAt uses closed containment, so an interval's end instant still
// reads as unavailable.
func StatusAt(ledger []models.Unavailability, instant time.Time) models.Status {
	for _, u := range ledger {
		if u.Interval().Contains(instant) {
			return models.StatusUnavailable
		}
	}
	return models.StatusAvailable
}

// ComputeStatus is the live status of an apartment. It is never stored.
func ComputeStatus(ledger []models.Unavailability, now time.Time) models.Status {
	return StatusAt(ledger, now.UTC())
}
