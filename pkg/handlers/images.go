package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayspot/pkg/database"
	"stayspot/pkg/policy"
	"stayspot/pkg/validation"
)

type imageRequest struct {
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// CreateSpotImage attaches an image to a spot, owner-only, capped at 10.
func CreateSpotImage(ctx *gin.Context) {
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
	if aerr := policy.AuthorizeSpot(user.ID, spot); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var body imageRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateImageURL(body.URL); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	image, aerr := policy.AttachImage(database.DB, policy.SpotParent(spot), body.URL, body.Preview)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":      image.ID,
		"url":     image.URL,
		"preview": image.Preview,
	})
}

// CreateReviewImage attaches an image to a review, author-only, capped
// at 10.
func CreateReviewImage(ctx *gin.Context) {
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

	var body imageRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateImageURL(body.URL); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	image, aerr := policy.AttachImage(database.DB, policy.ReviewParent(review), body.URL, body.Preview)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":  image.ID,
		"url": image.URL,
	})
}

// DeleteSpotImage and DeleteReviewImage share one path: load the image,
// resolve its stored parent, authorize through the parent's owner, delete.
// The route only decides the label of the 404.

func DeleteSpotImage(ctx *gin.Context) {
	deleteImage(ctx, "Spot Image")
}

func DeleteReviewImage(ctx *gin.Context) {
	deleteImage(ctx, "Review Image")
}

func deleteImage(ctx *gin.Context, resource string) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	imageID, ok := paramID(ctx, "imageId", resource)
	if !ok {
		return
	}
	image, aerr := policy.FindImage(database.DB, imageID, resource)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	parent, aerr := policy.ResolveImageParent(database.DB, image)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}
	if aerr := policy.AuthorizeImage(user.ID, parent); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	if err := database.DB.Delete(image).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to delete Image"))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
}
