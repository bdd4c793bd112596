package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

type AdminStats struct {
	PendingPlaylists  int64 `json:"pending_playlists"`
	ApprovedPlaylists int64 `json:"approved_playlists"`
	PendingNotes      int64 `json:"pending_notes"`
	PublishedNotes    int64 `json:"published_notes"`
	Subjects          int64 `json:"subjects"`
	Chapters          int64 `json:"chapters"`
}

// GET /api/admin/stats
// Dashboard counters, counted concurrently.
func GetAdminStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var stats AdminStats
	g, ctx := errgroup.WithContext(c.Request.Context())

	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Playlist{}).
			Where("status = ?", models.PlaylistStatusPending).
			Count(&stats.PendingPlaylists).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Playlist{}).
			Where("status = ?", models.PlaylistStatusApproved).
			Count(&stats.ApprovedPlaylists).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Note{}).
			Where("status = ?", models.NoteStatusPending).
			Count(&stats.PendingNotes).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Note{}).
			Where("status = ?", models.NoteStatusPublished).
			Count(&stats.PublishedNotes).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Subject{}).Count(&stats.Subjects).Error
	})
	g.Go(func() error {
		return db.WithContext(ctx).Model(&models.Chapter{}).Count(&stats.Chapters).Error
	})

	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
