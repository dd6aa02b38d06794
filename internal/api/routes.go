package api

import (
	"github.com/gin-gonic/gin"

	"papergenius/internal/api/handlers"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	router.GET("/", handler.HandleRoot)

	api := router.Group("/api")
	{
		api.GET("/test-gemini", handler.HandleTestGemini)

		api.POST("/folders", handler.HandleCreateFolder)
		api.GET("/folders/:userId", handler.HandleListFolders)
		api.POST("/upload/:folderId", handler.HandleUploadFile)

		api.POST("/templates", handler.HandleCreateTemplate)
		api.GET("/templates/:userId", handler.HandleListTemplates)

		api.POST("/generate-paper", handler.HandleGeneratePaper)
		api.GET("/paper/:paperId", handler.HandleGetPaper)
		api.GET("/papers/:userId", handler.HandleListPapers)
	}
}
