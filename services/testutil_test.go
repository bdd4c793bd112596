package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studystack/studystack-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Subject{},
		&models.Chapter{},
		&models.Playlist{},
		&models.Note{},
		&models.Developer{},
		&models.Admin{},
	))
	return db
}

func seedSubject(t *testing.T, db *gorm.DB, name string) models.Subject {
	t.Helper()
	subject := models.Subject{Name: name, Slug: name}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

func seedChapter(t *testing.T, db *gorm.DB, subject models.Subject, name string) models.Chapter {
	t.Helper()
	chapter := models.Chapter{SubjectID: subject.ID, Name: name}
	require.NoError(t, db.Create(&chapter).Error)
	return chapter
}

// stubResolver returns canned metadata, or the error mapped to a url.
type stubResolver struct {
	meta    map[string]*PlaylistMetadata
	errs    map[string]error
	failAll error
}

func (s *stubResolver) Resolve(_ context.Context, rawURL string) (*PlaylistMetadata, error) {
	if s.failAll != nil {
		return nil, s.failAll
	}
	if err, ok := s.errs[rawURL]; ok {
		return nil, err
	}
	if m, ok := s.meta[rawURL]; ok {
		return m, nil
	}
	return &PlaylistMetadata{Title: "Resolved " + rawURL, ThumbnailURL: "https://img.example/" + rawURL}, nil
}
