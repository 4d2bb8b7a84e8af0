package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayspot/pkg/models"
)

func TestEnsureFirstReviewAllowsFirst(t *testing.T) {
	db := setupTestDB(t)
	assert.Nil(t, EnsureFirstReview(db, 1, 1))
}

func TestEnsureFirstReviewRejectsSecond(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Review{UserID: 1, SpotID: 1, Review: "Nice", Stars: 4})

	aerr := EnsureFirstReview(db, 1, 1)
	assert.NotNil(t, aerr)
	assert.Equal(t, KindDuplicateReview, aerr.Kind)
	assert.Equal(t, http.StatusInternalServerError, aerr.Status)
	assert.Equal(t, "User already has a Review for this Spot", aerr.Message)
}

func TestEnsureFirstReviewScopedToPair(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Review{UserID: 1, SpotID: 1, Review: "Nice", Stars: 4})

	// Same user, different spot; different user, same spot.
	assert.Nil(t, EnsureFirstReview(db, 1, 2))
	assert.Nil(t, EnsureFirstReview(db, 2, 1))
}
