package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Developer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Role         string    `gorm:"size:255;not null" json:"role"`
	ImageURL     string    `gorm:"size:2048" json:"image_url"`
	GithubURL    *string   `gorm:"size:2048" json:"github_url"`
	LinkedinURL  *string   `gorm:"size:2048" json:"linkedin_url"`
	InstagramURL *string   `gorm:"size:2048" json:"instagram_url"`
	CollegeName  *string   `gorm:"size:255" json:"college_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (d *Developer) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
