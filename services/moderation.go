package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

// ModerationService owns the admin-side state transitions: approve,
// decline/reject, edit, delete, plus taxonomy management. Transitions are
// last-writer-wins; there is no optimistic concurrency token.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

/* ===== Playlists ===== */

// ApprovePlaylist moves a playlist to approved. Only the status column
// changes.
func (m *ModerationService) ApprovePlaylist(id uuid.UUID) error {
	return m.updateStatus(&models.Playlist{}, id, models.PlaylistStatusApproved)
}

// DeclinePlaylist rejects a pending playlist. Rejection is a hard delete.
func (m *ModerationService) DeclinePlaylist(id uuid.UUID) error {
	return m.deleteRow(&models.Playlist{}, id)
}

// DeletePlaylist removes an approved playlist.
func (m *ModerationService) DeletePlaylist(id uuid.UUID) error {
	return m.deleteRow(&models.Playlist{}, id)
}

// EditPlaylist updates title and url in place, status untouched.
func (m *ModerationService) EditPlaylist(id uuid.UUID, title, url string) error {
	return m.editTitleURL(&models.Playlist{}, id, title, url)
}

/* ===== Notes ===== */

func (m *ModerationService) ApproveNote(id uuid.UUID) error {
	return m.updateStatus(&models.Note{}, id, models.NoteStatusPublished)
}

// DeclineNote is the dashboard surface's rejection: the row is removed.
func (m *ModerationService) DeclineNote(id uuid.UUID) error {
	return m.deleteRow(&models.Note{}, id)
}

// RejectNote is the notes-admin surface's rejection: the row is kept with
// status rejected.
func (m *ModerationService) RejectNote(id uuid.UUID) error {
	return m.updateStatus(&models.Note{}, id, models.NoteStatusRejected)
}

func (m *ModerationService) EditNote(id uuid.UUID, title, url string) error {
	return m.editTitleURL(&models.Note{}, id, title, url)
}

func (m *ModerationService) DeleteNote(id uuid.UUID) error {
	return m.deleteRow(&models.Note{}, id)
}

/* ===== Taxonomy ===== */

func (m *ModerationService) CreateSubject(name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("subject name is required")
	}

	var count int64
	if err := m.db.Model(&models.Subject{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &AlreadyExistsError{Kind: "subjects", URLs: []string{name}}
	}

	subject := models.Subject{Name: name, Slug: slug.Make(name)}
	if err := m.db.Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (m *ModerationService) CreateChapter(subjectID uuid.UUID, name string) (*models.Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("chapter name is required")
	}

	var subject models.Subject
	if err := m.db.First(&subject, "id = ?", subjectID).Error; err != nil {
		return nil, err
	}

	// Same-named chapters under other subjects are fine; only this
	// subject's chapters are checked.
	var count int64
	if err := m.db.Model(&models.Chapter{}).
		Where("subject_id = ? AND LOWER(name) = LOWER(?)", subjectID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &AlreadyExistsError{Kind: "chapters", URLs: []string{name}}
	}

	chapter := models.Chapter{SubjectID: subjectID, Name: name}
	if err := m.db.Create(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

// DeleteSubject is a two-phase saga: delete the subject's chapters, then
// the subject itself. If the chapter phase fails the subject stays intact
// and the call can be retried (deleting zero chapters succeeds).
func (m *ModerationService) DeleteSubject(id uuid.UUID) error {
	var subject models.Subject
	if err := m.db.First(&subject, "id = ?", id).Error; err != nil {
		return err
	}

	if err := m.db.Where("subject_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
		return fmt.Errorf("deleting chapters of subject %s: %w", id, err)
	}
	if err := m.db.Delete(&models.Subject{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting subject %s: %w", id, err)
	}
	return nil
}

// DeleteChapter removes the chapter only. Its playlists and notes are
// left in place.
func (m *ModerationService) DeleteChapter(id uuid.UUID) error {
	return m.deleteRow(&models.Chapter{}, id)
}

/* ===== helpers ===== */

func (m *ModerationService) updateStatus(model interface{}, id uuid.UUID, status string) error {
	res := m.db.Model(model).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *ModerationService) editTitleURL(model interface{}, id uuid.UUID, title, url string) error {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return fmt.Errorf("title and url are required")
	}
	res := m.db.Model(model).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "url": url})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *ModerationService) deleteRow(model interface{}, id uuid.UUID) error {
	res := m.db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
