package policy

import (
	"gorm.io/gorm"

	"stayspot/pkg/models"
)

// EnsureFirstReview enforces one review per (user, spot). It runs at
// creation time only; updates operate on the already-unique row.
func EnsureFirstReview(db *gorm.DB, userID, spotID uint) *Error {
	var count int64
	if err := db.Model(&models.Review{}).
		Where("user_id = ? AND spot_id = ?", userID, spotID).
		Count(&count).Error; err != nil {
		return Internal("Failed to retrieve reviews")
	}
	if count > 0 {
		return DuplicateReview()
	}
	return nil
}
