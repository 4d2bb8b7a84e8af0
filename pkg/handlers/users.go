package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stayspot/pkg/auth"
	"stayspot/pkg/database"
	"stayspot/pkg/models"
	"stayspot/pkg/policy"
	"stayspot/pkg/validation"
)

// Signup registers a new user and hands back a token right away.
func Signup(ctx *gin.Context) {
	var body validation.SignupInput
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": err.Error()})
		return
	}

	if fieldErrors := validation.ValidateSignup(body); len(fieldErrors) > 0 {
		respondError(ctx, policy.Validation(fieldErrors))
		return
	}

	// Pre-check the unique columns so the response can name the colliding
	// field; the constraint itself remains the backstop.
	fieldErrors := map[string]string{}
	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count)
	if count > 0 {
		fieldErrors["username"] = "User with that username already exists"
	}
	count = 0
	database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
	if count > 0 {
		fieldErrors["email"] = "User with that email already exists"
	}
	if len(fieldErrors) > 0 {
		respondError(ctx, policy.UniqueViolation("User already exists", fieldErrors))
		return
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		respondError(ctx, policy.Internal("Failed to create User"))
		return
	}

	user := models.User{
		Username:       body.Username,
		Email:          body.Email,
		HashedPassword: hashed,
		FirstName:      body.FirstName,
		LastName:       body.LastName,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(ctx, policy.UniqueViolation("User already exists", nil))
			return
		}
		respondError(ctx, policy.Internal("Failed to create User"))
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondError(ctx, policy.Internal("Failed to issue token"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
		"token": token,
	})
}
