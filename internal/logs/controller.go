package logs

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Service *LogService
}

func strQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

func (lc *LogController) GetLogs(c *gin.Context) {
	input := LogFilterInput{
		Level:     strQuery(c, "level"),
		Service:   strQuery(c, "service"),
		Action:    strQuery(c, "action"),
		FormType:  strQuery(c, "form_type"),
		StartDate: strQuery(c, "start_date"),
		EndDate:   strQuery(c, "end_date"),
	}

	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid user_id is required"})
			return
		}
		input.UserID = &id
	}

	input.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	input.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	rows, total, totalPages, err := lc.Service.GetLogs(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Logs fetched successfully",
		"logs":        rows,
		"total":       total,
		"total_pages": totalPages,
		"page":        input.Page,
	})
}
