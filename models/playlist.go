package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlaylistStatusPending  = "pending"
	PlaylistStatusApproved = "approved"
)

// Playlist is a submitted YouTube playlist. SubjectID is denormalized from
// the chapter at submission time and is never edited independently.
// URL uniqueness is checked at submission time, not by the database.
type Playlist struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	URL          string    `gorm:"size:2048;not null" json:"url"`
	ThumbnailURL string    `gorm:"size:2048" json:"thumbnail_url"`
	ChapterID    uuid.UUID `gorm:"type:uuid;not null;index" json:"chapter_id"`
	Chapter      *Chapter  `json:"chapter,omitempty"`
	SubjectID    uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Status       string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
