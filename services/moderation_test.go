package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/models"
)

func seedPlaylist(t *testing.T, db *gorm.DB, chapter models.Chapter, url, status string) models.Playlist {
	t.Helper()
	pl := models.Playlist{
		Title: "Seed", URL: url, ThumbnailURL: "https://img/seed.jpg",
		ChapterID: chapter.ID, SubjectID: chapter.SubjectID, Status: status,
	}
	require.NoError(t, db.Create(&pl).Error)
	return pl
}

func seedNote(t *testing.T, db *gorm.DB, chapter models.Chapter, url, status string) models.Note {
	t.Helper()
	n := models.Note{Title: "Seed", URL: url, ChapterID: chapter.ID, Status: status}
	require.NoError(t, db.Create(&n).Error)
	return n
}

func TestApprovePlaylist_ChangesOnlyStatus(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "Physics"), "Optics")
	pl := seedPlaylist(t, db, chapter, "https://youtube.com/playlist?list=PL1", models.PlaylistStatusPending)

	require.NoError(t, NewModerationService(db).ApprovePlaylist(pl.ID))

	var got models.Playlist
	require.NoError(t, db.First(&got, "id = ?", pl.ID).Error)
	assert.Equal(t, models.PlaylistStatusApproved, got.Status)
	assert.Equal(t, pl.Title, got.Title)
	assert.Equal(t, pl.URL, got.URL)
	assert.Equal(t, pl.ThumbnailURL, got.ThumbnailURL)

	// moves from the pending projection to the approved one
	proj := NewProjectionService(db)
	pending, err := proj.ListPlaylistsByStatus(models.PlaylistStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
	approved, err := proj.ListPlaylistsByStatus(models.PlaylistStatusApproved)
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}

func TestApprovePlaylist_NotFound(t *testing.T) {
	db := newTestDB(t)
	err := NewModerationService(db).ApprovePlaylist(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeclinePlaylist_HardDeletes(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "Physics"), "Optics")
	pl := seedPlaylist(t, db, chapter, "https://youtube.com/playlist?list=PL2", models.PlaylistStatusPending)

	require.NoError(t, NewModerationService(db).DeclinePlaylist(pl.ID))

	var count int64
	require.NoError(t, db.Model(&models.Playlist{}).Where("id = ?", pl.ID).Count(&count).Error)
	assert.Zero(t, count)

	// gone from both projections
	proj := NewProjectionService(db)
	for _, status := range []string{models.PlaylistStatusPending, models.PlaylistStatusApproved} {
		got, err := proj.ListPlaylistsByStatus(status)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestEditPlaylist_PreservesStatus(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "Physics"), "Optics")
	pl := seedPlaylist(t, db, chapter, "https://youtube.com/playlist?list=PL3", models.PlaylistStatusApproved)

	m := NewModerationService(db)
	require.NoError(t, m.EditPlaylist(pl.ID, "New Title", "https://youtube.com/playlist?list=PL3b"))

	var got models.Playlist
	require.NoError(t, db.First(&got, "id = ?", pl.ID).Error)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "https://youtube.com/playlist?list=PL3b", got.URL)
	assert.Equal(t, models.PlaylistStatusApproved, got.Status)
}

func TestEditPlaylist_RejectsBlankFields(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "Physics"), "Optics")
	pl := seedPlaylist(t, db, chapter, "https://youtube.com/playlist?list=PL4", models.PlaylistStatusPending)

	m := NewModerationService(db)
	assert.Error(t, m.EditPlaylist(pl.ID, "  ", "https://x"))
	assert.Error(t, m.EditPlaylist(pl.ID, "Title", "  "))
}

func TestApproveNote_Publishes(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "History"), "Empires")
	n := seedNote(t, db, chapter, "https://files.example/n1.pdf", models.NoteStatusPending)

	require.NoError(t, NewModerationService(db).ApproveNote(n.ID))

	var got models.Note
	require.NoError(t, db.First(&got, "id = ?", n.ID).Error)
	assert.Equal(t, models.NoteStatusPublished, got.Status)
}

func TestDeclineNote_HardDeletes(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "History"), "Empires")
	n := seedNote(t, db, chapter, "https://files.example/n2.pdf", models.NoteStatusPending)

	require.NoError(t, NewModerationService(db).DeclineNote(n.ID))

	var count int64
	require.NoError(t, db.Model(&models.Note{}).Where("id = ?", n.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRejectNote_KeepsRowWithRejectedStatus(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "History"), "Empires")
	n := seedNote(t, db, chapter, "https://files.example/n3.pdf", models.NoteStatusPending)

	require.NoError(t, NewModerationService(db).RejectNote(n.ID))

	var got models.Note
	require.NoError(t, db.First(&got, "id = ?", n.ID).Error)
	assert.Equal(t, models.NoteStatusRejected, got.Status)
}

func TestCreateSubject_Slugifies(t *testing.T) {
	db := newTestDB(t)

	subject, err := NewModerationService(db).CreateSubject("  Organic Chemistry  ")
	require.NoError(t, err)
	assert.Equal(t, "Organic Chemistry", subject.Name)
	assert.Equal(t, "organic-chemistry", subject.Slug)
}

func TestCreateSubject_DuplicateNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	m := NewModerationService(db)

	_, err := m.CreateSubject("Physics")
	require.NoError(t, err)

	_, err = m.CreateSubject("physics")
	var exists *AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestCreateChapter_DuplicatePerSubjectOnly(t *testing.T) {
	db := newTestDB(t)
	m := NewModerationService(db)

	s1 := seedSubject(t, db, "Physics")
	s2 := seedSubject(t, db, "Chemistry")

	_, err := m.CreateChapter(s1.ID, "Introduction")
	require.NoError(t, err)

	// same name under another subject is allowed
	_, err = m.CreateChapter(s2.ID, "Introduction")
	require.NoError(t, err)

	// but not twice under the same subject, regardless of case
	_, err = m.CreateChapter(s1.ID, "introduction")
	var exists *AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestCreateChapter_SubjectNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewModerationService(db).CreateChapter(uuid.New(), "Intro")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteSubject_CascadesChaptersFirst(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db, "Physics")
	seedChapter(t, db, subject, "Optics")
	seedChapter(t, db, subject, "Waves")
	other := seedSubject(t, db, "Chemistry")
	kept := seedChapter(t, db, other, "Bonds")

	require.NoError(t, NewModerationService(db).DeleteSubject(subject.ID))

	var chapterCount int64
	require.NoError(t, db.Model(&models.Chapter{}).Where("subject_id = ?", subject.ID).Count(&chapterCount).Error)
	assert.Zero(t, chapterCount)

	var subjectCount int64
	require.NoError(t, db.Model(&models.Subject{}).Where("id = ?", subject.ID).Count(&subjectCount).Error)
	assert.Zero(t, subjectCount)

	// unrelated rows untouched
	var keptChapter models.Chapter
	assert.NoError(t, db.First(&keptChapter, "id = ?", kept.ID).Error)
}

func TestDeleteSubject_ChapterPhaseFailureLeavesSubject(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db, "Physics")
	seedChapter(t, db, subject, "Optics")

	// break phase one
	require.NoError(t, db.Migrator().DropTable(&models.Chapter{}))

	err := NewModerationService(db).DeleteSubject(subject.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Subject{}).Where("id = ?", subject.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteSubject_NotFound(t *testing.T) {
	db := newTestDB(t)
	err := NewModerationService(db).DeleteSubject(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteChapter_LeavesContentBehind(t *testing.T) {
	db := newTestDB(t)
	chapter := seedChapter(t, db, seedSubject(t, db, "Physics"), "Optics")
	pl := seedPlaylist(t, db, chapter, "https://youtube.com/playlist?list=PL5", models.PlaylistStatusApproved)
	n := seedNote(t, db, chapter, "https://files.example/n4.pdf", models.NoteStatusPublished)

	require.NoError(t, NewModerationService(db).DeleteChapter(chapter.ID))

	var chapterCount int64
	require.NoError(t, db.Model(&models.Chapter{}).Where("id = ?", chapter.ID).Count(&chapterCount).Error)
	assert.Zero(t, chapterCount)

	// playlists and notes are orphaned, not removed
	var gotPl models.Playlist
	assert.NoError(t, db.First(&gotPl, "id = ?", pl.ID).Error)
	var gotNote models.Note
	assert.NoError(t, db.First(&gotNote, "id = ?", n.ID).Error)
}
