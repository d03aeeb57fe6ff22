package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)

	c, w := testContext(t, "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "Password@123",
	})
	Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	assert.NotContains(t, user, "password")

	// The issued token carries the user id
	claims, err := utils.ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.UserID)

	c, w = testContext(t, "", gin.H{
		"email":    "alice@example.com",
		"password": "Password@123",
	})
	Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	payload := gin.H{"name": "Alice", "email": "alice@example.com", "password": "Password@123"}

	c, w := testContext(t, "", payload)
	Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = testContext(t, "", payload)
	Register(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)

	// Missing email
	c, w := testContext(t, "", gin.H{"name": "Alice", "password": "Password@123"})
	Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password too short
	c, w = testContext(t, "", gin.H{"name": "Alice", "email": "alice@example.com", "password": "abc"})
	Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	setupTestDB(t)

	c, w := testContext(t, "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "Password@123",
	})
	Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password
	c, w = testContext(t, "", gin.H{"email": "alice@example.com", "password": "wrong-password"})
	Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown account
	c, w = testContext(t, "", gin.H{"email": "nobody@example.com", "password": "Password@123"})
	Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutClaims(t *testing.T) {
	setupTestDB(t)

	// No claims in context (expired session): logout still succeeds
	c, w := testContext(t, "alice", nil)
	Logout(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
