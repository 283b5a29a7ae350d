package upload

import (
	"field-report-api/internal/logs"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, uploadService *UploadService, logService *logs.LogService) {
	uploadController := &UploadController{Service: uploadService, LogService: logService}

	r.POST("/uploads", uploadController.UploadFile)
}
