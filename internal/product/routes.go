package product

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, productService ProductServiceAPI) {
	productController := &ProductController{Service: productService}

	formsGroup := r.Group("/api/forms")
	{
		formsGroup.GET("/products/by-serial/:serial", productController.GetProductBySerial)
	}
}
