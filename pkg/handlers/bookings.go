package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stayspot/pkg/database"
	"stayspot/pkg/models"
	"stayspot/pkg/policy"
)

type bookingRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// CurrentBookings lists the acting user's bookings with a spot summary.
func CurrentBookings(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := database.DB.Where("user_id = ?", user.ID).Find(&bookings).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Bookings"))
		return
	}

	items := make([]gin.H, len(bookings))
	for i, booking := range bookings {
		item := bookingJSON(booking)
		var spot models.Spot
		if err := database.DB.First(&spot, booking.SpotID).Error; err == nil {
			item["Spot"] = spotJSON(spot)
		}
		items[i] = item
	}
	ctx.JSON(http.StatusOK, gin.H{"Bookings": items})
}

// SpotBookings shows a spot's bookings. The owner sees full rows with
// renter names; everyone else only sees the occupied date ranges.
func SpotBookings(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	spotID, ok := paramID(ctx, "spotId", "Spot")
	if !ok {
		return
	}
	spot, aerr := policy.FindSpot(database.DB, spotID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var bookings []models.Booking
	if err := database.DB.Where("spot_id = ?", spot.ID).Find(&bookings).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Bookings"))
		return
	}

	items := make([]gin.H, len(bookings))
	owner := spot.OwnerID == user.ID
	for i, booking := range bookings {
		if owner {
			item := bookingJSON(booking)
			var renter models.User
			if err := database.DB.First(&renter, booking.UserID).Error; err == nil {
				item["User"] = userSummary(renter)
			}
			items[i] = item
		} else {
			items[i] = gin.H{
				"spotId":    booking.SpotID,
				"startDate": booking.StartDate.Format(dateLayout),
				"endDate":   booking.EndDate.Format(dateLayout),
			}
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"Bookings": items})
}

// CreateBooking reserves a spot for the acting user. Any authenticated
// user, including the spot's owner, may attempt to book.
func CreateBooking(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	spotID, ok := paramID(ctx, "spotId", "Spot")
	if !ok {
		return
	}
	spot, aerr := policy.FindSpot(database.DB, spotID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var body bookingRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	start, end, fieldErrors := parseBookingDates(body.StartDate, body.EndDate)
	if len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	if aerr := policy.ValidateNewBooking(database.DB, spot.ID, start, end, time.Now()); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	booking := models.Booking{
		SpotID:    spot.ID,
		UserID:    user.ID,
		StartDate: policy.DateOnly(start),
		EndDate:   policy.DateOnly(end),
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, policy.ConflictFromConstraint())
			return
		}
		respondError(ctx, policy.Internal("Failed to create Booking"))
		return
	}

	ctx.JSON(http.StatusCreated, bookingJSON(booking))
}

// UpdateBooking changes the dates of an existing booking, renter-only. The
// dates are re-validated with the booking's own row excluded from the
// collision scan.
func UpdateBooking(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	bookingID, ok := paramID(ctx, "bookingId", "Booking")
	if !ok {
		return
	}
	booking, aerr := policy.FindBooking(database.DB, bookingID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}
	if aerr := policy.AuthorizeBooking(user.ID, booking); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var body bookingRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	start, end, fieldErrors := parseBookingDates(body.StartDate, body.EndDate)
	if len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	if aerr := policy.ValidateBookingUpdate(database.DB, booking, start, end, time.Now()); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	booking.StartDate = policy.DateOnly(start)
	booking.EndDate = policy.DateOnly(end)
	if err := database.DB.Save(booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, policy.ConflictFromConstraint())
			return
		}
		respondError(ctx, policy.Internal("Failed to update Booking"))
		return
	}

	ctx.JSON(http.StatusOK, bookingJSON(*booking))
}

// DeleteBooking cancels a booking, renter-only.
func DeleteBooking(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	bookingID, ok := paramID(ctx, "bookingId", "Booking")
	if !ok {
		return
	}
	booking, aerr := policy.FindBooking(database.DB, bookingID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}
	if aerr := policy.AuthorizeBooking(user.ID, booking); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	if err := database.DB.Delete(booking).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to delete Booking"))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
}
