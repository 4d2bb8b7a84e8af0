package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayspot/pkg/cleanup"
	"stayspot/pkg/database"
	"stayspot/pkg/models"
	"stayspot/pkg/policy"
	"stayspot/pkg/validation"
)

type reviewRequest struct {
	Review string `json:"review"`
	Stars  int    `json:"stars"`
}

func reviewJSON(review models.Review) gin.H {
	return gin.H{
		"id":        review.ID,
		"userId":    review.UserID,
		"spotId":    review.SpotID,
		"review":    review.Review,
		"stars":     review.Stars,
		"createdAt": review.CreatedAt,
		"updatedAt": review.UpdatedAt,
	}
}

func reviewImages(reviewID uint) []gin.H {
	var images []models.Image
	database.DB.
		Where("imageable_type = ? AND imageable_id = ?", models.ImageableReview, reviewID).
		Find(&images)
	items := make([]gin.H, len(images))
	for i, image := range images {
		items[i] = gin.H{"id": image.ID, "url": image.URL}
	}
	return items
}

// CurrentReviews lists the acting user's reviews with author, spot and
// image decorations.
func CurrentReviews(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := database.DB.Where("user_id = ?", user.ID).Find(&reviews).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Reviews"))
		return
	}

	items := make([]gin.H, len(reviews))
	for i, review := range reviews {
		item := reviewJSON(review)
		item["User"] = userSummary(user)
		var spot models.Spot
		if err := database.DB.First(&spot, review.SpotID).Error; err == nil {
			item["Spot"] = spotJSON(spot)
		}
		item["ReviewImages"] = reviewImages(review.ID)
		items[i] = item
	}
	ctx.JSON(http.StatusOK, gin.H{"Reviews": items})
}

// SpotReviews lists a spot's reviews, public.
func SpotReviews(ctx *gin.Context) {
	spotID, ok := paramID(ctx, "spotId", "Spot")
	if !ok {
		return
	}
	spot, aerr := policy.FindSpot(database.DB, spotID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var reviews []models.Review
	if err := database.DB.Where("spot_id = ?", spot.ID).Find(&reviews).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Reviews"))
		return
	}

	items := make([]gin.H, len(reviews))
	for i, review := range reviews {
		item := reviewJSON(review)
		var author models.User
		if err := database.DB.First(&author, review.UserID).Error; err == nil {
			item["User"] = userSummary(author)
		}
		item["ReviewImages"] = reviewImages(review.ID)
		items[i] = item
	}
	ctx.JSON(http.StatusOK, gin.H{"Reviews": items})
}

// CreateReview posts the acting user's review of a spot, at most one per
// (user, spot).
func CreateReview(ctx *gin.Context) {
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

	if aerr := policy.EnsureFirstReview(database.DB, user.ID, spot.ID); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var body reviewRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateReview(body.Review, body.Stars); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	review := models.Review{
		UserID: user.ID,
		SpotID: spot.ID,
		Review: body.Review,
		Stars:  body.Stars,
	}
	if err := database.DB.Create(&review).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to create Review"))
		return
	}

	ctx.JSON(http.StatusCreated, reviewJSON(review))
}

// UpdateReview edits a review, author-only.
func UpdateReview(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := paramID(ctx, "reviewId", "Review")
	if !ok {
		return
	}
	review, aerr := policy.FindReview(database.DB, reviewID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}
	if aerr := policy.AuthorizeReview(user.ID, review); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var body reviewRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateReview(body.Review, body.Stars); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	review.Review = body.Review
	review.Stars = body.Stars
	if err := database.DB.Save(review).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to update Review"))
		return
	}

	ctx.JSON(http.StatusOK, reviewJSON(*review))
}

// DeleteReview removes a review, author-only. Its images are orphaned by
// the delete and handed to the cleanup queue.
func DeleteReview(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	reviewID, ok := paramID(ctx, "reviewId", "Review")
	if !ok {
		return
	}
	review, aerr := policy.FindReview(database.DB, reviewID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}
	if aerr := policy.AuthorizeReview(user.ID, review); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	if err := database.DB.Delete(review).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to delete Review"))
		return
	}
	cleanup.Default.Enqueue(models.ImageableReview, review.ID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
}
