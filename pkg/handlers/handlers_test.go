package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stayspot/pkg/auth"
	"stayspot/pkg/database"
	"stayspot/pkg/middleware"
	"stayspot/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db
	return db
}

// testContext builds a handler-level request context: recorder plus
// hand-set request, body and params.
func testContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		ctx.Request = httptest.NewRequest(method, target, bytes.NewBuffer(jsonBody))
	} else {
		ctx.Request = httptest.NewRequest(method, target, nil)
	}
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func actAs(ctx *gin.Context, user models.User) {
	ctx.Set(middleware.ContextUserKey, user)
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	hashed, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: hashed,
		FirstName:      "Test",
		LastName:       "User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createSpot(t *testing.T, db *gorm.DB, owner models.User, address string) models.Spot {
	t.Helper()
	spot := models.Spot{
		OwnerID:     owner.ID,
		Address:     address,
		City:        "San Francisco",
		State:       "California",
		Country:     "United States of America",
		Lat:         37.76,
		Lng:         -122.47,
		Name:        "Test Spot",
		Description: "A spot for testing",
		Price:       100,
	}
	if err := db.Create(&spot).Error; err != nil {
		t.Fatalf("failed to create spot: %v", err)
	}
	return spot
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func fieldErrors(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	errors, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("response carries no field errors: %v", body)
	}
	return errors
}
