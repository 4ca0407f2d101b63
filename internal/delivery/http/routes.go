package http

import (
	"github.com/gin-gonic/gin"
	"github.com/modulargunworks/catalog/config"
	"github.com/rs/zerolog"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.GetCatalog)
			catalog.GET("/:brand", handler.GetBrand)
		}

		v1.POST("/ingest",
			RateLimitMiddleware(cfg.RateLimit.IngestPerMinute, cfg.RateLimit.IngestBurst),
			handler.TriggerIngest,
		)
		v1.GET("/reports/latest", handler.LatestReport)
	}

	return router
}
