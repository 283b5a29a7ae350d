package upload

import (
	"net/http"
	"path/filepath"

	"field-report-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	Service    *UploadService
	LogService *logs.LogService
}

func (uc *UploadController) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	stored := uc.Service.StoredName(file.Filename, file.Header.Get("Content-Type"))

	if err := c.SaveUploadedFile(file, filepath.Join(uc.Service.Dir, stored)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if uc.LogService != nil {
		_ = uc.LogService.Log(logs.SystemLog{
			Level:   "info",
			Service: "upload",
			Action:  "store",
			Message: "stored " + stored,
		}, map[string]any{"original": file.Filename, "size": file.Size})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filename": stored,
	})
}
