package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

type PlaylistSubmission struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title"`
}

type NoteSubmission struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title"`
}

// SubmissionFailure reports one playlist the resolver could not process.
// Failed items are excluded from the insert; the rest of the batch goes on.
type SubmissionFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

type PlaylistBatchResult struct {
	Inserted []models.Playlist   `json:"inserted"`
	Failed   []SubmissionFailure `json:"failed,omitempty"`
}

// ErrNothingProcessed means every item of the batch failed metadata
// resolution, so there was nothing to insert.
var ErrNothingProcessed = errors.New("no playlists could be processed")

// SubmissionService validates user submissions and inserts them as pending.
type SubmissionService struct {
	db       *gorm.DB
	resolver Resolver
}

func NewSubmissionService(db *gorm.DB, resolver Resolver) *SubmissionService {
	return &SubmissionService{db: db, resolver: resolver}
}

// checkDuplicateURLs rejects batches with repeated urls or urls already
// stored. Read-only: nothing is written until validation passes.
func (s *SubmissionService) checkDuplicateURLs(kind string, model interface{}, urls []string) error {
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if seen[u] {
			return &DuplicateInBatchError{URL: u}
		}
		seen[u] = true
	}

	var existing []string
	if err := s.db.Model(model).Where("url IN ?", urls).Pluck("url", &existing).Error; err != nil {
		return fmt.Errorf("checking existing %s: %w", kind, err)
	}
	if len(existing) > 0 {
		return &AlreadyExistsError{Kind: kind, URLs: existing}
	}
	return nil
}

// SubmitPlaylists validates the batch, resolves metadata per item and
// inserts the survivors with status pending. The returned result carries
// per-item resolver failures even when the call as a whole succeeds.
func (s *SubmissionService) SubmitPlaylists(ctx context.Context, chapterID uuid.UUID, items []PlaylistSubmission) (*PlaylistBatchResult, error) {
	valid := make([]PlaylistSubmission, 0, len(items))
	urls := make([]string, 0, len(items))
	for _, it := range items {
		u := strings.TrimSpace(it.URL)
		if u == "" {
			continue
		}
		if _, ok := ExtractPlaylistID(u); !ok {
			return nil, &InvalidURLError{URL: u}
		}
		valid = append(valid, PlaylistSubmission{URL: u, Title: strings.TrimSpace(it.Title)})
		urls = append(urls, u)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyBatch
	}

	if err := s.checkDuplicateURLs("playlists", &models.Playlist{}, urls); err != nil {
		return nil, err
	}

	// subject_id is denormalized from the target chapter at write time
	var chapter models.Chapter
	if err := s.db.First(&chapter, "id = ?", chapterID).Error; err != nil {
		return nil, err
	}

	result := &PlaylistBatchResult{}
	rows := make([]models.Playlist, 0, len(valid))
	for _, it := range valid {
		meta, err := s.resolver.Resolve(ctx, it.URL)
		if err != nil {
			if errors.Is(err, ErrMissingAPIKey) {
				return nil, err
			}
			log.Printf("playlist %s skipped: %v", it.URL, err)
			result.Failed = append(result.Failed, SubmissionFailure{URL: it.URL, Reason: err.Error()})
			continue
		}

		title := it.Title
		if title == "" {
			title = meta.Title
		}
		rows = append(rows, models.Playlist{
			Title:        title,
			URL:          it.URL,
			ThumbnailURL: meta.ThumbnailURL,
			ChapterID:    chapter.ID,
			SubjectID:    chapter.SubjectID,
			Status:       models.PlaylistStatusPending,
		})
	}

	if len(rows) == 0 {
		return result, ErrNothingProcessed
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return result, fmt.Errorf("inserting playlists: %w", err)
	}
	result.Inserted = rows
	return result, nil
}

// SubmitNotes validates the batch and inserts all notes with status pending.
func (s *SubmissionService) SubmitNotes(chapterID uuid.UUID, items []NoteSubmission) ([]models.Note, error) {
	valid := make([]NoteSubmission, 0, len(items))
	urls := make([]string, 0, len(items))
	for _, it := range items {
		u := strings.TrimSpace(it.URL)
		if u == "" {
			continue
		}
		valid = append(valid, NoteSubmission{URL: u, Title: strings.TrimSpace(it.Title)})
		urls = append(urls, u)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyBatch
	}

	if err := s.checkDuplicateURLs("notes", &models.Note{}, urls); err != nil {
		return nil, err
	}

	var chapter models.Chapter
	if err := s.db.First(&chapter, "id = ?", chapterID).Error; err != nil {
		return nil, err
	}

	rows := make([]models.Note, 0, len(valid))
	for _, it := range valid {
		title := it.Title
		if title == "" {
			title = "Untitled Note"
		}
		rows = append(rows, models.Note{
			Title:     title,
			URL:       it.URL,
			ChapterID: chapter.ID,
			Status:    models.NoteStatusPending,
		})
	}
	if err := s.db.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("inserting notes: %w", err)
	}
	return rows, nil
}
