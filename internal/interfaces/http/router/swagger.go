package router

import (
	"github.com/erp/projectlink/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterSwagger serves the registered API documentation under /swagger,
// limited to allowedIPs when the list is not empty.
func RegisterSwagger(engine *gin.Engine, allowedIPs []string) {
	engine.GET("/swagger/*any", middleware.SwaggerAccess(allowedIPs), ginSwagger.WrapHandler(swaggerFiles.Handler))
}
