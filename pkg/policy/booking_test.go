package policy

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"stayspot/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedBooking(t *testing.T, db *gorm.DB, spotID uint, start, end time.Time) models.Booking {
	t.Helper()
	booking := models.Booking{SpotID: spotID, UserID: 1, StartDate: start, EndDate: end}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}

func TestValidateNewBookingAccepts(t *testing.T) {
	db := setupTestDB(t)
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 5), today)
	assert.Nil(t, aerr)
}

func TestValidateNewBookingStartInPast(t *testing.T) {
	db := setupTestDB(t)
	today := day(2024, 6, 10)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 15), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindValidation, aerr.Kind)
	assert.Equal(t, http.StatusBadRequest, aerr.Status)
	assert.Equal(t, "startDate cannot be in the past", aerr.Fields["startDate"])
}

func TestValidateNewBookingSameDayIsNotPast(t *testing.T) {
	db := setupTestDB(t)
	// A request made at 15:00 booking a stay starting "today" must pass:
	// comparison is day-level, not instant-level.
	today := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 5), today)
	assert.Nil(t, aerr)
}

func TestValidateNewBookingEndOnOrBeforeStart(t *testing.T) {
	db := setupTestDB(t)
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 6), day(2024, 6, 5), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindValidation, aerr.Kind)
	assert.Equal(t, http.StatusBadRequest, aerr.Status)
	assert.Equal(t, "endDate cannot be on or before startDate", aerr.Fields["endDate"])

	aerr = ValidateNewBooking(db, 1, day(2024, 6, 5), day(2024, 6, 5), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, "endDate cannot be on or before startDate", aerr.Fields["endDate"])
}

func TestValidateNewBookingStartConflict(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 10), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindBookingConflict, aerr.Kind)
	assert.Equal(t, http.StatusForbidden, aerr.Status)
	assert.Equal(t, "Start date conflicts with an existing booking", aerr.Fields["startDate"])
	assert.NotContains(t, aerr.Fields, "endDate")
}

func TestValidateNewBookingEndConflict(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 2), day(2024, 6, 5), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindBookingConflict, aerr.Kind)
	assert.Equal(t, "End date conflicts with an existing booking", aerr.Fields["endDate"])
	assert.NotContains(t, aerr.Fields, "startDate")
}

func TestValidateNewBookingBothEndpointsConflict(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 5), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindBookingConflict, aerr.Kind)
	assert.Equal(t, "Sorry, this Spot is already booked for the specified dates", aerr.Message)
	assert.Len(t, aerr.Fields, 2)
}

// The collision rule matches endpoints only. A range that genuinely
// overlaps an existing stay but shares neither endpoint is accepted; this
// pins the behavior rather than endorsing it.
func TestValidateNewBookingOverlapWithoutSharedEndpointsAccepted(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 10))
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 5), day(2024, 6, 20), today)
	assert.Nil(t, aerr)
}

func TestValidateNewBookingIgnoresOtherSpots(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 2, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	aerr := ValidateNewBooking(db, 1, day(2024, 6, 1), day(2024, 6, 5), today)
	assert.Nil(t, aerr)
}

func TestValidateNewBookingRangeCheckedBeforeConflict(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 6, 6), day(2024, 6, 10))
	today := day(2024, 5, 1)

	// Inverted range whose start also collides: the 400 must win.
	aerr := ValidateNewBooking(db, 1, day(2024, 6, 6), day(2024, 6, 5), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindValidation, aerr.Kind)
	assert.Equal(t, http.StatusBadRequest, aerr.Status)
}

func TestValidateBookingUpdateExcludesOwnRow(t *testing.T) {
	db := setupTestDB(t)
	booking := seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	// Re-saving the same dates must not conflict with itself.
	aerr := ValidateBookingUpdate(db, &booking, day(2024, 6, 1), day(2024, 6, 5), today)
	assert.Nil(t, aerr)
}

func TestValidateBookingUpdateStillConflictsWithOthers(t *testing.T) {
	db := setupTestDB(t)
	seedBooking(t, db, 1, day(2024, 7, 1), day(2024, 7, 5))
	booking := seedBooking(t, db, 1, day(2024, 6, 1), day(2024, 6, 5))
	today := day(2024, 5, 1)

	aerr := ValidateBookingUpdate(db, &booking, day(2024, 7, 1), day(2024, 7, 10), today)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindBookingConflict, aerr.Kind)
	assert.Equal(t, "Start date conflicts with an existing booking", aerr.Fields["startDate"])
}

func TestDateOnlyDiscardsTimeOfDay(t *testing.T) {
	stamp := time.Date(2024, 6, 1, 23, 59, 59, 999, time.FixedZone("X", 3600))
	assert.Equal(t, day(2024, 6, 1), DateOnly(stamp))
}
