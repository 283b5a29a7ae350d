package hospital

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HospitalController struct {
	Service HospitalServiceAPI
}

func (hc *HospitalController) GetHospitalsByRegion(c *gin.Context) {
	region := strings.TrimSpace(c.Param("region"))
	if region == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region is required"})
		return
	}

	hospitals, err := hc.Service.GetByRegion(c.Request.Context(), region)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Hospitals fetched successfully",
		"retrieved_hospitals": hospitals,
	})
}
