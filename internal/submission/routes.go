package submission

import (
	"field-report-api/internal/logs"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, submissionService SubmissionServiceAPI, logService *logs.LogService) {
	submissionController := &SubmissionController{Service: submissionService, LogService: logService}

	formsGroup := r.Group("/api/forms")
	{
		formsGroup.POST("/:formType", submissionController.SaveSubmission)
		formsGroup.GET("/:formType/submissions", submissionController.ListSubmissions)
		formsGroup.GET("/:formType/export", submissionController.ExportSubmissions)
	}
}
