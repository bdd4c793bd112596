package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/services"
	"github.com/studystack/studystack-backend/utils"
	"github.com/studystack/studystack-backend/ws"
)

// resolverFactory builds the metadata resolver per request; tests swap it
// for a stub.
var resolverFactory = func(ctx context.Context) (services.Resolver, error) {
	return services.NewYouTubeResolver(ctx)
}

type SubmitPlaylistsInput struct {
	ChapterID string                        `json:"chapter_id" binding:"required"`
	Playlists []services.PlaylistSubmission `json:"playlists" binding:"required"`
}

// POST /api/submissions/playlists
func SubmitPlaylists(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input SubmitPlaylistsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapterID, err := uuid.Parse(input.ChapterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter_id"})
		return
	}

	resolver, err := resolverFactory(c.Request.Context())
	if err != nil {
		// configuration problem, not a user error
		c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key is not configured"})
		return
	}

	svc := services.NewSubmissionService(db, resolver)
	result, err := svc.SubmitPlaylists(c.Request.Context(), chapterID, input.Playlists)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		case errors.Is(err, services.ErrNothingProcessed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "failed": result.Failed})
		case errors.Is(err, services.ErrMissingAPIKey):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit playlists"})
		}
		return
	}

	ws.BroadcastTableChange("playlists", ws.EventInsert)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Playlists submitted for review",
		"inserted": result.Inserted,
		"failed":   result.Failed,
	})
}

type SubmitNotesInput struct {
	ChapterID string                    `json:"chapter_id" binding:"required"`
	Notes     []services.NoteSubmission `json:"notes" binding:"required"`
}

// POST /api/submissions/notes
func SubmitNotes(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input SubmitNotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapterID, err := uuid.Parse(input.ChapterID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter_id"})
		return
	}

	svc := services.NewSubmissionService(db, nil)
	notes, err := svc.SubmitNotes(chapterID, input.Notes)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chapter not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit notes"})
		}
		return
	}

	ws.BroadcastTableChange("notes", ws.EventInsert)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Notes submitted for review",
		"inserted": notes,
	})
}

// POST /api/uploads/notes
// Accepts a PDF, checks it parses, stores it and returns the public URL the
// submitter then uses as the note url.
func UploadNoteFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file attached"})
		return
	}
	if file.Size > 20*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 20MB"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}

	if err := services.CheckPDF(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a valid PDF", "details": err.Error()})
		return
	}

	fileID := uuid.New()
	publicURL, err := utils.UploadNoteToSupabase(data, fileID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": publicURL})
}
