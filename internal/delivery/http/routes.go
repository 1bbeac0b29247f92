package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nutriboard/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/table", handler.FilterTable)
			products.GET("/scatter", handler.ProductScatter)
			products.GET("/compare-options", handler.CompareOptions)
			products.GET("/detail", handler.ProductDetail)
		}

		v1.POST("/query", handler.ResolveQuery)
		v1.POST("/compare", handler.CompareProducts)
	}

	return router
}
