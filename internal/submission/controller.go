package submission

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"field-report-api/internal/logs"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service    SubmissionServiceAPI
	LogService *logs.LogService
}

// POST /api/forms/:formType
//
// Accepts a multipart form whose values are the already-encoded field strings.
// user_id and status travel as ordinary form values.
func (sc *SubmissionController) SaveSubmission(c *gin.Context) {
	formType := strings.TrimSpace(c.Param("formType"))
	if formType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formType is required"})
		return
	}

	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	fields := make(map[string]string, len(mf.Value))
	for key, vals := range mf.Value {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}

	var userIDPtr *int64
	if raw := strings.TrimSpace(fields["user_id"]); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		userIDPtr = &userID
	}

	req := &SaveSubmissionRequest{
		FormType: formType,
		UserID:   userIDPtr,
		Status:   fields["status"],
		Fields:   fields,
	}

	res, err := sc.Service.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if sc.LogService != nil {
		_ = sc.LogService.Log(logs.SystemLog{
			Level:    "info",
			Service:  "submission",
			UserID:   userIDPtr,
			Action:   "save",
			Message:  fmt.Sprintf("saved %s submission %d", res.Status, res.ID),
			FormType: &formType,
		}, map[string]any{"fields": len(fields)})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission saved successfully",
		"submission": res,
	})
}

// GET /api/forms/:formType/submissions?status=...
func (sc *SubmissionController) ListSubmissions(c *gin.Context) {
	formType := strings.TrimSpace(c.Param("formType"))
	if formType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formType is required"})
		return
	}

	var statusPtr *string
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		statusPtr = &status
	}

	rows, err := sc.Service.List(formType, statusPtr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": rows})
}

// GET /api/forms/:formType/export
func (sc *SubmissionController) ExportSubmissions(c *gin.Context) {
	formType := strings.TrimSpace(c.Param("formType"))
	if formType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formType is required"})
		return
	}

	contentType, filename, out, err := sc.Service.Export(formType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, out)
}
