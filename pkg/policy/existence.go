package policy

import (
	"errors"

	"gorm.io/gorm"

	"stayspot/pkg/models"
)

// The existence gate. Every mutation path resolves its resource here before
// any ownership check runs, so a missing row always answers 404 and never
// leaks a 403.

func FindSpot(db *gorm.DB, id uint) (*models.Spot, *Error) {
	var spot models.Spot
	if err := db.First(&spot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Spot")
		}
		return nil, Internal("Failed to retrieve Spot")
	}
	return &spot, nil
}

func FindReview(db *gorm.DB, id uint) (*models.Review, *Error) {
	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Review")
		}
		return nil, Internal("Failed to retrieve Review")
	}
	return &review, nil
}

func FindBooking(db *gorm.DB, id uint) (*models.Booking, *Error) {
	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Booking")
		}
		return nil, Internal("Failed to retrieve Booking")
	}
	return &booking, nil
}

// FindImage takes the resource label for the 404 message because the image
// routes name their flavor ("Spot Image" / "Review Image") before the row,
// and so its stored parent type, is known.
func FindImage(db *gorm.DB, id uint, resource string) (*models.Image, *Error) {
	var image models.Image
	if err := db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(resource)
		}
		return nil, Internal("Failed to retrieve Image")
	}
	return &image, nil
}
