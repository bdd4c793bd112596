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

// GET /api/subjects
func GetSubjects(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	subjects, err := services.NewProjectionService(db).ListSubjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list subjects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": subjects})
}

// GET /api/subjects/:id
func GetSubjectDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	proj := services.NewProjectionService(db)
	subject, err := proj.GetSubject(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "subject not found"})
		return
	}

	chapters, err := proj.ListChapters(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list chapters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject":  subject,
		"chapters": chapters,
	})
}

type CreateSubjectInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/admin/subjects
func CreateSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateSubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject name is required"})
		return
	}

	subject, err := services.NewModerationService(db).CreateSubject(input.Name)
	if err != nil {
		var exists *services.AlreadyExistsError
		if errors.As(err, &exists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subject name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create subject"})
		return
	}

	ws.BroadcastTableChange("subjects", ws.EventInsert)
	c.JSON(http.StatusCreated, gin.H{
		"message": "subject created",
		"subject": subject,
	})
}

// DELETE /api/admin/subjects/:id
// Two-phase cascade: chapters first, then the subject. If the chapter
// phase fails the subject survives untouched.
func DeleteSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.NewModerationService(db).DeleteSubject(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subject not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete subject"})
		return
	}

	ws.BroadcastTableChange("chapters", ws.EventDelete)
	ws.BroadcastTableChange("subjects", ws.EventDelete)
	c.JSON(http.StatusOK, gin.H{"message": "subject and its chapters deleted"})
}
