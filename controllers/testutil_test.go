package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studystack/studystack-backend/middleware"
	"github.com/studystack/studystack-backend/models"
	"github.com/studystack/studystack-backend/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
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

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DBMiddleware(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// stubResolver satisfies services.Resolver with canned metadata.
type stubResolver struct {
	err error
}

func (s *stubResolver) Resolve(_ context.Context, rawURL string) (*services.PlaylistMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &services.PlaylistMetadata{Title: "Stubbed", ThumbnailURL: "https://img/stub.jpg"}, nil
}

func useStubResolver(t *testing.T, stub *stubResolver) {
	t.Helper()
	orig := resolverFactory
	resolverFactory = func(context.Context) (services.Resolver, error) { return stub, nil }
	t.Cleanup(func() { resolverFactory = orig })
}
