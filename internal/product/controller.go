package product

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Service ProductServiceAPI
}

func (pc *ProductController) GetProductBySerial(c *gin.Context) {
	serial := strings.TrimSpace(c.Param("serial"))
	if serial == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serial is required"})
		return
	}

	p, err := pc.Service.GetBySerial(serial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if p == nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":  true,
		"product": p,
	})
}
