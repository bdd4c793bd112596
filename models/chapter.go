package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chapter struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject   `json:"subject,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Playlists []Playlist `gorm:"foreignKey:ChapterID" json:"playlists,omitempty"`
	Notes     []Note     `gorm:"foreignKey:ChapterID" json:"notes,omitempty"`
}

func (ch *Chapter) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	return nil
}
