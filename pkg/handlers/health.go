package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayspot/pkg/database"
)

func HealthCheck(ctx *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "UP"})
}
