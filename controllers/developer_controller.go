package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
	"github.com/studystack/studystack-backend/services"
	"github.com/studystack/studystack-backend/ws"
)

// GET /api/developers
func GetDevelopers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	developers, err := services.NewProjectionService(db).ListDevelopers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list developers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": developers})
}

type DeveloperInput struct {
	Name         string  `json:"name" binding:"required"`
	Role         string  `json:"role" binding:"required"`
	ImageURL     string  `json:"image_url"`
	GithubURL    *string `json:"github_url"`
	LinkedinURL  *string `json:"linkedin_url"`
	InstagramURL *string `json:"instagram_url"`
	CollegeName  *string `json:"college_name"`
}

// POST /api/admin/developers
func CreateDeveloper(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	developer := models.Developer{
		Name:         input.Name,
		Role:         input.Role,
		ImageURL:     input.ImageURL,
		GithubURL:    input.GithubURL,
		LinkedinURL:  input.LinkedinURL,
		InstagramURL: input.InstagramURL,
		CollegeName:  input.CollegeName,
	}
	if err := db.Create(&developer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create developer"})
		return
	}

	ws.BroadcastTableChange("developers", ws.EventInsert)
	c.JSON(http.StatusCreated, gin.H{
		"message":   "developer created",
		"developer": developer,
	})
}

// PUT /api/admin/developers/:id
func UpdateDeveloper(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var developer models.Developer
	if err := db.First(&developer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "developer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update developer"})
		return
	}

	developer.Name = input.Name
	developer.Role = input.Role
	developer.ImageURL = input.ImageURL
	developer.GithubURL = input.GithubURL
	developer.LinkedinURL = input.LinkedinURL
	developer.InstagramURL = input.InstagramURL
	developer.CollegeName = input.CollegeName

	if err := db.Save(&developer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update developer"})
		return
	}

	ws.BroadcastTableChange("developers", ws.EventUpdate)
	c.JSON(http.StatusOK, gin.H{
		"message":   "developer updated",
		"developer": developer,
	})
}

// DELETE /api/admin/developers/:id
func DeleteDeveloper(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result := db.Delete(&models.Developer{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete developer"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "developer not found"})
		return
	}

	ws.BroadcastTableChange("developers", ws.EventDelete)
	c.JSON(http.StatusOK, gin.H{"message": "developer deleted"})
}
