package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stayspot/pkg/auth"
	"stayspot/pkg/cleanup"
	"stayspot/pkg/database"
	"stayspot/pkg/handlers"
	"stayspot/pkg/middleware"
	"stayspot/pkg/models"
)

func main() {
	log.Println("Starting stayspot server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	seedDemoData()

	worker := cleanup.NewWorker(database.DB, cleanup.Default, 30*time.Second)
	worker.Start()
	defer worker.Stop()

	server := setupRouter()

	port := getEnv("PORT", "8080")
	log.Printf("stayspot server starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupRouter() *gin.Engine {
	server := gin.Default()

	server.Use(middleware.RequestID())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := server.Group("/api")
	{
		api.POST("/users", handlers.Signup)
		api.POST("/session", handlers.Login)
		api.GET("/session", middleware.RequireAuth(), handlers.Me)

		spots := api.Group("/spots")
		{
			spots.GET("", handlers.ListSpots)
			spots.GET("/current", middleware.RequireAuth(), handlers.CurrentSpots)
			spots.GET("/:spotId", handlers.GetSpot)
			spots.POST("", middleware.RequireAuth(), handlers.CreateSpot)
			spots.PUT("/:spotId", middleware.RequireAuth(), handlers.UpdateSpot)
			spots.DELETE("/:spotId", middleware.RequireAuth(), handlers.DeleteSpot)

			spots.GET("/:spotId/reviews", handlers.SpotReviews)
			spots.POST("/:spotId/reviews", middleware.RequireAuth(), handlers.CreateReview)
			spots.GET("/:spotId/bookings", middleware.RequireAuth(), handlers.SpotBookings)
			spots.POST("/:spotId/bookings", middleware.RequireAuth(), handlers.CreateBooking)
			spots.POST("/:spotId/images", middleware.RequireAuth(), handlers.CreateSpotImage)
		}

		reviews := api.Group("/reviews", middleware.RequireAuth())
		{
			reviews.GET("/current", handlers.CurrentReviews)
			reviews.PUT("/:reviewId", handlers.UpdateReview)
			reviews.DELETE("/:reviewId", handlers.DeleteReview)
			reviews.POST("/:reviewId/images", handlers.CreateReviewImage)
		}

		bookings := api.Group("/bookings", middleware.RequireAuth())
		{
			bookings.GET("/current", handlers.CurrentBookings)
			bookings.PUT("/:bookingId", handlers.UpdateBooking)
			bookings.DELETE("/:bookingId", handlers.DeleteBooking)
		}

		api.DELETE("/spot-images/:imageId", middleware.RequireAuth(), handlers.DeleteSpotImage)
		api.DELETE("/review-images/:imageId", middleware.RequireAuth(), handlers.DeleteReviewImage)
	}

	server.GET("/manage/health", handlers.HealthCheck)

	return server
}

// seedDemoData plants a demo owner and a couple of listed spots so a fresh
// install has something to show. Safe to run repeatedly.
func seedDemoData() {
	var existing models.User
	if err := database.DB.Where("username = ?", "demo-host").First(&existing).Error; err == nil {
		return
	}

	hashed, err := auth.HashPassword("password")
	if err != nil {
		log.Printf("Demo seed skipped: %v", err)
		return
	}
	host := models.User{
		Username:       "demo-host",
		Email:          "demo-host@stayspot.io",
		HashedPassword: hashed,
		FirstName:      "Demo",
		LastName:       "Host",
	}
	if err := database.DB.Create(&host).Error; err != nil {
		log.Printf("Demo seed skipped: %v", err)
		return
	}

	spots := []models.Spot{
		{
			OwnerID: host.ID,
			Address: "123 Disney Lane", City: "San Francisco", State: "California", Country: "United States of America",
			Lat: 37.7645358, Lng: -122.4730327,
			Name: "App Academy", Description: "Place where web developers are created", Price: 123,
		},
		{
			OwnerID: host.ID,
			Address: "456 Cannery Row", City: "Monterey", State: "California", Country: "United States of America",
			Lat: 36.6002378, Lng: -121.8946761,
			Name: "Seaside Cottage", Description: "Two bedrooms a short walk from the aquarium", Price: 219,
		},
	}
	for i := range spots {
		if err := database.DB.Create(&spots[i]).Error; err != nil {
			log.Printf("Demo seed skipped: %v", err)
			return
		}
		image := models.Image{
			URL:           "https://images.stayspot.io/spots/" + spots[i].City + ".jpg",
			ImageableType: models.ImageableSpot,
			ImageableID:   spots[i].ID,
			Preview:       true,
		}
		database.DB.Create(&image)
	}

	log.Println("Demo data seeded")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
