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

// GET /api/admin/playlists?status=pending|approved
func GetPlaylists(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	status := c.DefaultQuery("status", models.PlaylistStatusPending)
	if status != models.PlaylistStatusPending && status != models.PlaylistStatusApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	playlists, err := services.NewProjectionService(db).ListPlaylistsByStatus(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list playlists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": playlists})
}

// PATCH /api/admin/playlists/:id/approve
func ApprovePlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.NewModerationService(db).ApprovePlaylist(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot approve playlist"})
		return
	}

	ws.BroadcastTableChange("playlists", ws.EventUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "playlist approved"})
}

// DELETE /api/admin/playlists/:id/decline
// Declining is a hard delete; there is no rejected status for playlists.
func DeclinePlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.NewModerationService(db).DeclinePlaylist(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot decline playlist"})
		return
	}

	ws.BroadcastTableChange("playlists", ws.EventDelete)
	c.JSON(http.StatusOK, gin.H{"message": "playlist rejected and deleted"})
}

type UpdatePlaylistInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
}

// PUT /api/admin/playlists/:id
func UpdatePlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input UpdatePlaylistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewModerationService(db).EditPlaylist(id, input.Title, input.URL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update playlist"})
		return
	}

	ws.BroadcastTableChange("playlists", ws.EventUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "playlist updated"})
}

// DELETE /api/admin/playlists/:id
func DeletePlaylist(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := services.NewModerationService(db).DeletePlaylist(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete playlist"})
		return
	}

	ws.BroadcastTableChange("playlists", ws.EventDelete)
	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}
