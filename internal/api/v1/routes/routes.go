package routes

import (
	"github.com/gin-gonic/gin"

	"batch-whisper/internal/api/v1/handlers"
	"batch-whisper/internal/api/v1/services"
)

// ServiceContainer holds all service dependencies
type ServiceContainer struct {
	FileService   services.FileService
	BatchService  services.BatchService
	ResultService services.ResultService
	ModelService  services.ModelService

	// MaxUploadBytes caps one multipart upload; zero disables the cap
	MaxUploadBytes int64
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	fileHandler := handlers.NewFileHandler(container.FileService, container.MaxUploadBytes)
	files := router.Group("/files")
	{
		files.POST("", fileHandler.Upload)
		files.GET("", fileHandler.List)
		files.GET("/:id", fileHandler.Get)
		files.DELETE("/:id", fileHandler.Delete)
	}

	batchHandler := handlers.NewBatchHandler(container.BatchService)
	batch := router.Group("/batch")
	{
		batch.POST("", batchHandler.Start)
		batch.GET("", batchHandler.Status)
	}

	resultHandler := handlers.NewResultHandler(container.ResultService)
	results := router.Group("/results")
	{
		results.GET("", resultHandler.List)
		results.GET("/:id/export", resultHandler.ExportOne)
	}
	router.GET("/export", resultHandler.ExportAll)

	modelHandler := handlers.NewModelHandler(container.ModelService)
	models := router.Group("/models")
	{
		models.GET("", modelHandler.List)
		models.POST("/discover", modelHandler.Discover)
	}
}
