package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/nrandle/image-downloader/internal/transport/middleware"
)

func InitRoutes(imgHandler *ImageHandler) *gin.Engine {
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(120))

	// Two-phase CSV handshake
	router.POST("/csv/prepare", imgHandler.PrepareCSV)
	router.POST("/csv/process", imgHandler.ProcessCSV)

	// Direct uploads
	router.POST("/upload-images", imgHandler.UploadImages)

	// Legacy single-shot routes
	router.POST("/upload", imgHandler.LegacyUpload)
	router.POST("/convert", imgHandler.LegacyConvert)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "image-downloader-service",
		})
	})
	return router
}
