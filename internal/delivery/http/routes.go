package http

import (
	"github.com/gin-gonic/gin"

	"github.com/medscan/backend/config"
	"github.com/medscan/backend/internal/domain"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiterStore domain.CacheRepository) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 && limiterStore != nil {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, limiterStore))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		medicines := v1.Group("/medicines")
		{
			medicines.POST("/identify", handler.IdentifyMedicine)
		}
	}

	return router
}
