package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/services"
	"github.com/studystack/studystack-backend/ws"
)

// GET /api/chapters/:id
// Chapter with its subject, approved playlists and published notes.
func GetChapterDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	chapter, err := services.NewProjectionService(db).GetChapterContent(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chapter": chapter})
}

type CreateChapterInput struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// POST /api/admin/chapters
func CreateChapter(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateChapterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subjectID, err := uuid.Parse(input.SubjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject_id"})
		return
	}

	chapter, err := services.NewModerationService(db).CreateChapter(subjectID, input.Name)
	if err != nil {
		var exists *services.AlreadyExistsError
		switch {
		case errors.As(err, &exists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "chapter already exists"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "subject not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create chapter"})
		}
		return
	}

	ws.BroadcastTableChange("chapters", ws.EventInsert)
	c.JSON(http.StatusCreated, gin.H{
		"message": "chapter created",
		"chapter": chapter,
	})
}

// DELETE /api/admin/chapters/:id
// No cascade: the chapter's playlists and notes stay behind.
func DeleteChapter(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.NewModerationService(db).DeleteChapter(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete chapter"})
		return
	}

	ws.BroadcastTableChange("chapters", ws.EventDelete)
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted"})
}
