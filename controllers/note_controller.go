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

// GET /api/admin/notes?status=pending|published|rejected (empty = all)
func GetNotes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	status := c.Query("status")
	switch status {
	case "", models.NoteStatusPending, models.NoteStatusPublished, models.NoteStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	notes, err := services.NewProjectionService(db).ListNotesByStatus(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notes})
}

// PATCH /api/admin/notes/:id/approve
func ApproveNote(c *gin.Context) {
	noteAction(c, func(m *services.ModerationService, id uuid.UUID) error {
		return m.ApproveNote(id)
	}, ws.EventUpdate, "note approved")
}

// DELETE /api/admin/notes/:id/decline
// The dashboard surface: a declined note is removed outright.
func DeclineNote(c *gin.Context) {
	noteAction(c, func(m *services.ModerationService, id uuid.UUID) error {
		return m.DeclineNote(id)
	}, ws.EventDelete, "note rejected and deleted")
}

// PATCH /api/admin/notes/:id/reject
// The notes-admin surface: the note is kept with status rejected.
func RejectNote(c *gin.Context) {
	noteAction(c, func(m *services.ModerationService, id uuid.UUID) error {
		return m.RejectNote(id)
	}, ws.EventUpdate, "note rejected")
}

// DELETE /api/admin/notes/:id
func DeleteNote(c *gin.Context) {
	noteAction(c, func(m *services.ModerationService, id uuid.UUID) error {
		return m.DeleteNote(id)
	}, ws.EventDelete, "note deleted")
}

type UpdateNoteInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
}

// PUT /api/admin/notes/:id
func UpdateNote(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewModerationService(db).EditNote(id, input.Title, input.URL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update note"})
		return
	}

	ws.BroadcastTableChange("notes", ws.EventUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "note updated"})
}

func noteAction(c *gin.Context, action func(*services.ModerationService, uuid.UUID) error, event, message string) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := action(services.NewModerationService(db), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "note action failed"})
		return
	}

	ws.BroadcastTableChange("notes", event)
	c.JSON(http.StatusOK, gin.H{"message": message})
}
