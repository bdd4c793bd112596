package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

// ProjectionService materializes the read-only views the portal renders.
// No caching: every call re-issues the underlying queries.
type ProjectionService struct {
	db *gorm.DB
}

func NewProjectionService(db *gorm.DB) *ProjectionService {
	return &ProjectionService{db: db}
}

type SubjectSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	ChaptersCount  int64     `json:"chapters_count"`
	PlaylistsCount int64     `json:"playlists_count"`
}

// ListSubjects returns all subjects with chapter and playlist counts,
// ordered by name.
func (p *ProjectionService) ListSubjects() ([]SubjectSummary, error) {
	var results []SubjectSummary
	err := p.db.Raw(`
		SELECT
			s.id,
			s.name,
			s.slug,
			COUNT(DISTINCT c.id) AS chapters_count,
			COUNT(DISTINCT pl.id) AS playlists_count
		FROM subjects s
		LEFT JOIN chapters c ON c.subject_id = s.id
		LEFT JOIN playlists pl ON pl.subject_id = s.id
		GROUP BY s.id, s.name, s.slug
		ORDER BY s.name ASC
	`).Scan(&results).Error
	return results, err
}

type ChapterSummary struct {
	ID             uuid.UUID `json:"id"`
	SubjectID      uuid.UUID `json:"subject_id"`
	Name           string    `json:"name"`
	PlaylistsCount int64     `json:"playlists_count"`
	NotesCount     int64     `json:"notes_count"`
}

// ListChapters returns a subject's chapters with playlist and note counts,
// ordered by name.
func (p *ProjectionService) ListChapters(subjectID uuid.UUID) ([]ChapterSummary, error) {
	var results []ChapterSummary
	err := p.db.Raw(`
		SELECT
			c.id,
			c.subject_id,
			c.name,
			COUNT(DISTINCT pl.id) AS playlists_count,
			COUNT(DISTINCT n.id) AS notes_count
		FROM chapters c
		LEFT JOIN playlists pl ON pl.chapter_id = c.id
		LEFT JOIN notes n ON n.chapter_id = c.id
		WHERE c.subject_id = ?
		GROUP BY c.id, c.subject_id, c.name
		ORDER BY c.name ASC
	`, subjectID).Scan(&results).Error
	return results, err
}

// GetSubject loads one subject row.
func (p *ProjectionService) GetSubject(id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := p.db.First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// GetChapterContent loads a chapter with its subject, approved playlists and
// published notes, newest first.
func (p *ProjectionService) GetChapterContent(id uuid.UUID) (*models.Chapter, error) {
	var chapter models.Chapter
	err := p.db.
		Preload("Subject").
		Preload("Playlists", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.PlaylistStatusApproved).Order("created_at DESC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.NoteStatusPublished).Order("created_at DESC")
		}).
		First(&chapter, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListPlaylistsByStatus returns playlists in the given status joined
// chapter→subject, newest first.
func (p *ProjectionService) ListPlaylistsByStatus(status string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := p.db.
		Preload("Chapter.Subject").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&playlists).Error
	return playlists, err
}

// ListNotesByStatus returns notes joined chapter→subject, newest first.
// An empty status returns all notes (the notes-admin "all" tab).
func (p *ProjectionService) ListNotesByStatus(status string) ([]models.Note, error) {
	var notes []models.Note
	query := p.db.Preload("Chapter.Subject").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&notes).Error
	return notes, err
}

// ListDevelopers returns every developer row.
func (p *ProjectionService) ListDevelopers() ([]models.Developer, error) {
	var developers []models.Developer
	err := p.db.Order("created_at ASC").Find(&developers).Error
	return developers, err
}
