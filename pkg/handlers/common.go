package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayspot/pkg/middleware"
	"stayspot/pkg/models"
	"stayspot/pkg/policy"
)

const dateLayout = "2006-01-02"

func respondError(ctx *gin.Context, err *policy.Error) {
	body := gin.H{"message": err.Message}
	if len(err.Fields) > 0 {
		body["errors"] = err.Fields
	}
	ctx.JSON(err.Status, body)
}

func currentUser(ctx *gin.Context) (models.User, bool) {
	user, err := middleware.CurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return models.User{}, false
	}
	return user, true
}

// paramID parses a numeric path parameter. A malformed id can never match a
// row, so it answers the same 404 a missing row would.
func paramID(ctx *gin.Context, name, resource string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(ctx, policy.NotFound(resource))
		return 0, false
	}
	return uint(id), true
}

// parseBookingDates turns the request's date strings into day-precision
// times, collecting field errors for anything unparsable.
func parseBookingDates(startRaw, endRaw string) (time.Time, time.Time, map[string]string) {
	errors := map[string]string{}
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		errors["startDate"] = "startDate must be a valid date (YYYY-MM-DD)"
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		errors["endDate"] = "endDate must be a valid date (YYYY-MM-DD)"
	}
	return start, end, errors
}

func userSummary(user models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	}
}

func bookingJSON(booking models.Booking) gin.H {
	return gin.H{
		"id":        booking.ID,
		"spotId":    booking.SpotID,
		"userId":    booking.UserID,
		"startDate": booking.StartDate.Format(dateLayout),
		"endDate":   booking.EndDate.Format(dateLayout),
		"createdAt": booking.CreatedAt,
		"updatedAt": booking.UpdatedAt,
	}
}
