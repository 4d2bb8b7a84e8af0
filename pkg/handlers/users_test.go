package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stayspot/pkg/auth"
	"stayspot/pkg/models"
)

func validSignupBody() gin.H {
	return gin.H{
		"username":  "new-host",
		"email":     "new-host@example.com",
		"password":  "password",
		"firstName": "New",
		"lastName":  "Host",
	}
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)

	ctx, w := testContext(t, "POST", "/api/users", validSignupBody())

	Signup(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	userBody := body["user"].(map[string]interface{})
	assert.Equal(t, "new-host", userBody["username"])
	assert.NotContains(t, userBody, "hashedPassword")

	// The issued token resolves back to the stored row.
	var user models.User
	assert.NoError(t, db.Where("username = ?", "new-host").First(&user).Error)
	userID, err := auth.VerifyToken(body["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.NotEqual(t, "password", user.HashedPassword)
}

func TestSignupValidationErrors(t *testing.T) {
	setupTestDB(t)

	ctx, w := testContext(t, "POST", "/api/users", gin.H{
		"username":  "abc",
		"email":     "not-an-email",
		"password":  "short",
		"firstName": "",
		"lastName":  "",
	})

	Signup(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Bad Request", body["message"])
	errors := fieldErrors(t, body)
	assert.Equal(t, "Invalid email", errors["email"])
	assert.Equal(t, "Password must be 6 characters or more", errors["password"])
	assert.Equal(t, "First Name is required", errors["firstName"])
	assert.Equal(t, "Last Name is required", errors["lastName"])
	assert.Contains(t, errors, "username")
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	createUser(t, db, "new-host")

	body := validSignupBody()
	body["email"] = "different@example.com"
	ctx, w := testContext(t, "POST", "/api/users", body)

	Signup(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "User already exists", resp["message"])
	assert.Equal(t, "User with that username already exists", fieldErrors(t, resp)["username"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	existing := createUser(t, db, "old-host")

	body := validSignupBody()
	body["email"] = existing.Email
	ctx, w := testContext(t, "POST", "/api/users", body)

	Signup(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "User already exists", resp["message"])
	assert.Equal(t, "User with that email already exists", fieldErrors(t, resp)["email"])
}
