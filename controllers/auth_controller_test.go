package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	admin := seedAdmin(t, db, "admin", "s3cret")

	r := newTestRouter(db)
	r.POST("/api/auth/login", Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Admin struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, admin.ID.String(), resp.Admin.ID)
	assert.Equal(t, "admin", resp.Admin.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedAdmin(t, db, "admin", "s3cret")

	r := newTestRouter(db)
	r.POST("/api/auth/login", Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	r := newTestRouter(db)
	r.POST("/api/auth/login", Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "ghost", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	db := newTestDB(t)

	r := newTestRouter(db)
	r.POST("/api/auth/login", Login)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
