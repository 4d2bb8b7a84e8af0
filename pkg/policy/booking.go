package policy

import (
	"time"

	"gorm.io/gorm"

	"stayspot/pkg/models"
)

// DateOnly discards the time-of-day so that same-day comparisons between
// the request, the clock and stored rows are well-defined.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateNewBooking runs the booking checks for a candidate reservation of
// spotID. Structural problems (past start, inverted range) answer 400 and
// are checked first; only when the dates are sound is the collision scan
// against existing bookings performed, answering 403.
//
// The collision rule is deliberately narrow: a candidate is rejected only
// when its start day or end day exactly matches an existing booking's start
// or end day. Ranges that overlap without sharing an endpoint are accepted.
func ValidateNewBooking(db *gorm.DB, spotID uint, startDate, endDate, today time.Time) *Error {
	return validateBooking(db, spotID, 0, startDate, endDate, today)
}

// ValidateBookingUpdate applies the same checks for changed dates on an
// existing booking, with the booking's own row excluded from the scan so it
// cannot conflict with itself.
func ValidateBookingUpdate(db *gorm.DB, booking *models.Booking, startDate, endDate, today time.Time) *Error {
	return validateBooking(db, booking.SpotID, booking.ID, startDate, endDate, today)
}

func validateBooking(db *gorm.DB, spotID, excludeID uint, startDate, endDate, today time.Time) *Error {
	start := DateOnly(startDate)
	end := DateOnly(endDate)
	now := DateOnly(today)

	fields := map[string]string{}
	if start.Before(now) {
		fields["startDate"] = "startDate cannot be in the past"
	}
	if !end.After(start) {
		fields["endDate"] = "endDate cannot be on or before startDate"
	}
	if len(fields) > 0 {
		return Validation(fields)
	}

	query := db.Where("spot_id = ?", spotID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var existing []models.Booking
	if err := query.Find(&existing).Error; err != nil {
		return Internal("Failed to retrieve bookings")
	}

	for _, b := range existing {
		if DateOnly(b.StartDate).Equal(start) {
			fields["startDate"] = "Start date conflicts with an existing booking"
		}
		if DateOnly(b.EndDate).Equal(end) {
			fields["endDate"] = "End date conflicts with an existing booking"
		}
	}
	if len(fields) > 0 {
		return BookingConflict(fields)
	}
	return nil
}

// ConflictFromConstraint maps a duplicate-key violation raised by the
// (spot_id, start_date) / (spot_id, end_date) unique indexes to the same
// envelope the validator produces. It is the backstop for two requests that
// both passed validation before either inserted.
func ConflictFromConstraint() *Error {
	return BookingConflict(map[string]string{
		"startDate": "Start date conflicts with an existing booking",
		"endDate":   "End date conflicts with an existing booking",
	})
}
