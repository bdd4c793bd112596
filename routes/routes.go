package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studystack/studystack-backend/controllers"
	"github.com/studystack/studystack-backend/middleware"
	"github.com/studystack/studystack-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", middleware.DBMiddleware(db), controllers.HealthCheck)

	r.GET("/ws/tables/:table", ws.HandleTableWebSocket)

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
	}

	// Public portal reads
	api.GET("/subjects", controllers.GetSubjects)
	api.GET("/subjects/:id", controllers.GetSubjectDetail)
	api.GET("/chapters/:id", controllers.GetChapterDetail)
	api.GET("/developers", controllers.GetDevelopers)

	// Visitor submissions land as pending content
	api.POST("/submissions/playlists", controllers.SubmitPlaylists)
	api.POST("/submissions/notes", controllers.SubmitNotes)
	api.POST("/uploads/notes", controllers.UploadNoteFile)

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles("admin"))

		admin.GET("/stats", controllers.GetAdminStats)

		admin.POST("/subjects", controllers.CreateSubject)
		admin.DELETE("/subjects/:id", controllers.DeleteSubject)

		admin.POST("/chapters", controllers.CreateChapter)
		admin.DELETE("/chapters/:id", controllers.DeleteChapter)

		admin.GET("/playlists", controllers.GetPlaylists)
		admin.PATCH("/playlists/:id/approve", controllers.ApprovePlaylist)
		admin.DELETE("/playlists/:id/decline", controllers.DeclinePlaylist)
		admin.PUT("/playlists/:id", controllers.UpdatePlaylist)
		admin.DELETE("/playlists/:id", controllers.DeletePlaylist)

		admin.GET("/notes", controllers.GetNotes)
		admin.PATCH("/notes/:id/approve", controllers.ApproveNote)
		admin.DELETE("/notes/:id/decline", controllers.DeclineNote)
		admin.PATCH("/notes/:id/reject", controllers.RejectNote)
		admin.PUT("/notes/:id", controllers.UpdateNote)
		admin.DELETE("/notes/:id", controllers.DeleteNote)

		admin.POST("/developers", controllers.CreateDeveloper)
		admin.PUT("/developers/:id", controllers.UpdateDeveloper)
		admin.DELETE("/developers/:id", controllers.DeleteDeveloper)
	}

	return r
}
