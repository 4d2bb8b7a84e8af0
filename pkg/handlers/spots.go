package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stayspot/pkg/cleanup"
	"stayspot/pkg/database"
	"stayspot/pkg/models"
	"stayspot/pkg/policy"
	"stayspot/pkg/validation"
)

// spotJSON decorates a spot with its review average and preview thumbnail,
// the shape the listing pages consume.
func spotJSON(spot models.Spot) gin.H {
	var avgRating *float64
	row := database.DB.Model(&models.Review{}).
		Select("AVG(stars)").
		Where("spot_id = ?", spot.ID).
		Row()
	_ = row.Scan(&avgRating)

	var previewImage *string
	var image models.Image
	err := database.DB.
		Where("imageable_type = ? AND imageable_id = ? AND preview = ?", models.ImageableSpot, spot.ID, true).
		First(&image).Error
	if err == nil {
		previewImage = &image.URL
	}

	return gin.H{
		"id":           spot.ID,
		"ownerId":      spot.OwnerID,
		"address":      spot.Address,
		"city":         spot.City,
		"state":        spot.State,
		"country":      spot.Country,
		"lat":          spot.Lat,
		"lng":          spot.Lng,
		"name":         spot.Name,
		"description":  spot.Description,
		"price":        spot.Price,
		"createdAt":    spot.CreatedAt,
		"updatedAt":    spot.UpdatedAt,
		"avgRating":    avgRating,
		"previewImage": previewImage,
	}
}

func parseSpotQuery(ctx *gin.Context) (validation.SpotQuery, map[string]string) {
	query := validation.SpotQuery{Page: 1, Size: 20}
	fieldErrors := map[string]string{}

	if raw := ctx.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["page"] = "Page must be greater than or equal to 1"
		} else {
			query.Page = page
		}
	}
	if raw := ctx.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["size"] = "Size must be between 1 and 20"
		} else {
			query.Size = size
		}
	}

	floatParam := func(name, message string) *float64 {
		raw := ctx.Query(name)
		if raw == "" {
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors[name] = message
			return nil
		}
		return &value
	}
	intParam := func(name, message string) *int {
		raw := ctx.Query(name)
		if raw == "" {
			return nil
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors[name] = message
			return nil
		}
		return &value
	}

	query.MinLat = floatParam("minLat", "Minimum latitude is invalid")
	query.MaxLat = floatParam("maxLat", "Maximum latitude is invalid")
	query.MinLng = floatParam("minLng", "Minimum longitude is invalid")
	query.MaxLng = floatParam("maxLng", "Maximum longitude is invalid")
	query.MinPrice = intParam("minPrice", "Minimum price must be greater than or equal to 0")
	query.MaxPrice = intParam("maxPrice", "Maximum price must be greater than or equal to 0")

	for field, message := range validation.ValidateSpotQuery(query) {
		fieldErrors[field] = message
	}
	return query, fieldErrors
}

// ListSpots answers the public listing with range filters and pagination.
func ListSpots(ctx *gin.Context) {
	query, fieldErrors := parseSpotQuery(ctx)
	if len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	q := database.DB.Model(&models.Spot{})
	if query.MinLat != nil {
		q = q.Where("lat >= ?", *query.MinLat)
	}
	if query.MaxLat != nil {
		q = q.Where("lat <= ?", *query.MaxLat)
	}
	if query.MinLng != nil {
		q = q.Where("lng >= ?", *query.MinLng)
	}
	if query.MaxLng != nil {
		q = q.Where("lng <= ?", *query.MaxLng)
	}
	if query.MinPrice != nil {
		q = q.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		q = q.Where("price <= ?", *query.MaxPrice)
	}

	var spots []models.Spot
	if err := q.Offset((query.Page - 1) * query.Size).Limit(query.Size).Find(&spots).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Spots"))
		return
	}

	items := make([]gin.H, len(spots))
	for i, spot := range spots {
		items[i] = spotJSON(spot)
	}
	ctx.JSON(http.StatusOK, gin.H{"Spots": items, "page": query.Page, "size": query.Size})
}

// CurrentSpots lists the spots owned by the acting user.
func CurrentSpots(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var spots []models.Spot
	if err := database.DB.Where("owner_id = ?", user.ID).Find(&spots).Error; err != nil {
		respondError(ctx, policy.Internal("Failed to retrieve Spots"))
		return
	}

	items := make([]gin.H, len(spots))
	for i, spot := range spots {
		items[i] = spotJSON(spot)
	}
	ctx.JSON(http.StatusOK, gin.H{"Spots": items})
}

// GetSpot returns one spot with its images and owner summary.
func GetSpot(ctx *gin.Context) {
	spotID, ok := paramID(ctx, "spotId", "Spot")
	if !ok {
		return
	}
	spot, aerr := policy.FindSpot(database.DB, spotID)
	if aerr != nil {
		respondError(ctx, aerr)
		return
	}

	var images []models.Image
	database.DB.
		Where("imageable_type = ? AND imageable_id = ?", models.ImageableSpot, spot.ID).
		Find(&images)
	spotImages := make([]gin.H, len(images))
	for i, image := range images {
		spotImages[i] = gin.H{"id": image.ID, "url": image.URL, "preview": image.Preview}
	}

	var owner models.User
	database.DB.First(&owner, spot.OwnerID)

	body := spotJSON(*spot)
	body["SpotImages"] = spotImages
	body["Owner"] = userSummary(owner)
	ctx.JSON(http.StatusOK, body)
}

// CreateSpot validates and persists a new listing for the acting user.
func CreateSpot(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body validation.SpotInput
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateSpot(body); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	if aerr := ensureAddressFree(body.Address, 0); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	spot := models.Spot{
		OwnerID:     user.ID,
		Address:     body.Address,
		City:        body.City,
		State:       body.State,
		Country:     body.Country,
		Lat:         body.Lat,
		Lng:         body.Lng,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
	}
	if err := database.DB.Create(&spot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, policy.UniqueViolation("Spot already exists",
				map[string]string{"address": "Spot with that address already exists"}))
			return
		}
		respondError(ctx, policy.Internal("Failed to create Spot"))
		return
	}

	ctx.JSON(http.StatusCreated, spot)
}

// UpdateSpot replaces a spot's attributes, owner-only.
func UpdateSpot(ctx *gin.Context) {
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

	var body validation.SpotInput
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}
	if fieldErrors := validation.ValidateSpot(body); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}
	if aerr := ensureAddressFree(body.Address, spot.ID); aerr != nil {
		respondError(ctx, aerr)
		return
	}

	spot.Address = body.Address
	spot.City = body.City
	spot.State = body.State
	spot.Country = body.Country
	spot.Lat = body.Lat
	spot.Lng = body.Lng
	spot.Name = body.Name
	spot.Description = body.Description
	spot.Price = body.Price

	if err := database.DB.Save(spot).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, policy.UniqueViolation("Spot already exists",
				map[string]string{"address": "Spot with that address already exists"}))
			return
		}
		respondError(ctx, policy.Internal("Failed to update Spot"))
		return
	}

	ctx.JSON(http.StatusOK, spot)
}

// DeleteSpot removes a spot and cascades to its bookings and reviews in one
// transaction. Images of the deleted tree carry no foreign key, so they are
// handed to the cleanup queue instead of being deleted inline.
func DeleteSpot(ctx *gin.Context) {
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

	var reviewIDs []uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Review{}).
			Where("spot_id = ?", spot.ID).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("spot_id = ?", spot.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("spot_id = ?", spot.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(spot).Error
	})
	if err != nil {
		respondError(ctx, policy.Internal("Failed to delete Spot"))
		return
	}

	cleanup.Default.Enqueue(models.ImageableSpot, spot.ID)
	for _, reviewID := range reviewIDs {
		cleanup.Default.Enqueue(models.ImageableReview, reviewID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully deleted"})
}

func ensureAddressFree(address string, excludeID uint) *policy.Error {
	q := database.DB.Model(&models.Spot{}).Where("address = ?", address)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return policy.Internal("Failed to retrieve Spots")
	}
	if count > 0 {
		return policy.UniqueViolation("Spot already exists",
			map[string]string{"address": "Spot with that address already exists"})
	}
	return nil
}
