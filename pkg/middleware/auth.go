package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayspot/pkg/auth"
	"stayspot/pkg/database"
	"stayspot/pkg/models"
)

const ContextUserKey = "currentUser"

// RequireAuth rejects anonymous callers before any ownership logic runs.
// On success the loaded user row is stashed in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := auth.VerifyToken(parts[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the actor resolved by RequireAuth.
func CurrentUser(ctx *gin.Context) (models.User, error) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return models.User{}, errors.New("no authenticated user in context")
	}
	user, ok := value.(models.User)
	if !ok {
		return models.User{}, errors.New("no authenticated user in context")
	}
	return user, nil
}
