package hospital

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, hospitalService HospitalServiceAPI) {
	hospitalController := &HospitalController{Service: hospitalService}

	formsGroup := r.Group("/api/forms")
	{
		formsGroup.GET("/hospital/:region", hospitalController.GetHospitalsByRegion)
	}
}
