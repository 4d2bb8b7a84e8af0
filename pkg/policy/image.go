package policy

import (
	"errors"

	"gorm.io/gorm"

	"stayspot/pkg/models"
)

// AttachImage persists a new image under the given parent. The discriminator
// pair is always derived from the resolved parent, never from caller input.
// The count and the insert run in one transaction so a concurrent attach
// cannot push a parent past the cap.
//
// No rule limits how many images may carry preview=true; multiple previews
// are accepted here.
func AttachImage(db *gorm.DB, parent ImageParent, url string, preview bool) (*models.Image, *Error) {
	image := &models.Image{
		URL:           url,
		ImageableType: parent.Type,
		ImageableID:   parent.ID(),
		Preview:       preview,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Image{}).
			Where("imageable_type = ? AND imageable_id = ?", parent.Type, parent.ID()).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxImagesPerResource {
			return limitError(parent)
		}
		return tx.Create(image).Error
	})
	if err != nil {
		var aerr *Error
		if errors.As(err, &aerr) {
			return nil, aerr
		}
		return nil, Internal("Failed to create Image")
	}
	return image, nil
}

func limitError(parent ImageParent) *Error {
	if parent.Type == models.ImageableSpot {
		return ImageLimit("Forbidden: Maximum image limit of 10 reached for this Spot")
	}
	return ImageLimit("Forbidden: Maximum number of Images for this resource was reached")
}

// ResolveImageParent loads the parent row an image points at. Deletion
// authorization branches on the stored discriminator, not on the route the
// request arrived through.
func ResolveImageParent(db *gorm.DB, image *models.Image) (ImageParent, *Error) {
	switch image.ImageableType {
	case models.ImageableSpot:
		spot, aerr := FindSpot(db, image.ImageableID)
		if aerr != nil {
			return ImageParent{}, aerr
		}
		return SpotParent(spot), nil
	case models.ImageableReview:
		review, aerr := FindReview(db, image.ImageableID)
		if aerr != nil {
			return ImageParent{}, aerr
		}
		return ReviewParent(review), nil
	default:
		return ImageParent{}, Internal("Image has an unknown parent type")
	}
}
